// Package questions holds the handover question set. It is data, not
// logic: swap the file or edit the table without touching the call path.
package questions

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Default is the standing Flynn handoff question list, asked in order
// against every transcript.
var Default = []string{
	"Who was a part of the meeting?",
	"Who is the customer for this project and describe our past working relationship, if any?",
	"What's included/excluded? Are all trades and tasks covered?",
	"What is the project construction schedule (start and expected completion) for our scope?",
	"What are the underlying risks associated with performing our work on this project?",
	"Are safety protocols, risks, and responsibilities discussed?",
	"Are subcontractors identified and scheduled?",
	"Where are materials stored? Delivery coordination?",
	"Is the budget reviewed and roles defined for tracking costs? Do we have an NTE?",
	"Is the change process understood? Forms, approvals, pricing?",
	"What are the payment terms?",
	"Who's the main contact? Method/frequency of updates?",
	"When and how are issues escalated?",
	"Is there a scheduled check-in after handoff?",
}

// LoadFile reads a question list from a text file, one question per line.
// Blank lines are skipped.
func LoadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open questions file: %w", err)
	}
	defer f.Close()

	var qs []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			qs = append(qs, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read questions file: %w", err)
	}

	if len(qs) == 0 {
		return nil, fmt.Errorf("questions file %s contains no questions", path)
	}

	return qs, nil
}

// Resolve returns the question set for a run: the file when one is
// configured, otherwise the built-in list.
func Resolve(file string) ([]string, error) {
	if file == "" {
		return Default, nil
	}
	return LoadFile(file)
}
