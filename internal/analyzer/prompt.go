package analyzer

import "fmt"

const systemPrompt = `You are an expert transcript analyst for Flynn Construction, specializing in construction project handover meetings.

Key principles:
- Provide professional-level analysis (assume readers understand construction)
- Quote directly from the transcript to support all claims
- Synthesize information clearly before presenting evidence
- Only suggest follow-ups for genuinely unclear contract/spec items
- Keep responses concise but comprehensive`

const userPromptTemplate = `You are a senior project manager at Flynn Construction preparing your team for this project.

%s

Analyze the handover meeting and provide actionable information.

Please structure your answer using *exactly* these sections:
1. Expert interpretation – concise statements explaining what was determined
2. Supporting quotes – each on a new line, formatted as "Speaker: 'exact quote'"
3. Professional summary – bullet list of any gaps, next steps, or items needing clarification

Focus on what the construction team needs to execute successfully.

Question: %s
Answer:`

func buildPrompt(transcriptText, question string) string {
	return fmt.Sprintf(userPromptTemplate, transcriptText, question)
}
