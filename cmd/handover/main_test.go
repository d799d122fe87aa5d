package main

import "testing"

func TestCommandsRegistered(t *testing.T) {
	want := map[string]bool{"run": false, "watch": false}

	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}

	for name, found := range want {
		if !found {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestRunRequiresTranscriptArg(t *testing.T) {
	if err := runCmd.Args(runCmd, []string{}); err == nil {
		t.Error("run should require a transcript argument")
	}
	if err := runCmd.Args(runCmd, []string{"handover.txt"}); err != nil {
		t.Errorf("run with one argument: %v", err)
	}
}
