package prompt

import (
	"testing"

	"sshpass/pkg/define"
)

func classifyAll(c *Classifier, chunks ...string) []define.Outcome {
	out := make([]define.Outcome, 0, len(chunks))
	for _, chunk := range chunks {
		out = append(out, c.Classify([]byte(chunk)))
	}
	return out
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		chunks []string
		want   []define.Outcome
	}{
		{
			name:   "banner only",
			chunks: []string{"Welcome to host\r\n", "Last login: Mon\r\n"},
			want:   []define.Outcome{define.StillRunning, define.StillRunning},
		},
		{
			name:   "password once",
			chunks: []string{"Password: "},
			want:   []define.Outcome{define.PasswordSent},
		},
		{
			name:   "password twice is wrong password",
			chunks: []string{"Password: ", "\r\n", "Password: "},
			want:   []define.Outcome{define.PasswordSent, define.StillRunning, define.WrongPassword},
		},
		{
			name:   "prompt split across reads",
			chunks: []string{"user@host's pa", "ssw", "ord: "},
			want:   []define.Outcome{define.StillRunning, define.StillRunning, define.PasswordSent},
		},
		{
			name:   "unknown host key",
			chunks: []string{"The authenticity of host 'h (10.0.0.1)' can't be established.\r\n"},
			want:   []define.Outcome{define.HostKeyUnknownOutcome},
		},
		{
			name: "changed host key",
			chunks: []string{
				"Warning: the ECDSA host key for 'h' differs from the key for the IP address '10.0.0.1'\r\n",
			},
			want: []define.Outcome{define.HostKeyChangedOutcome},
		},
		{
			name:   "password wins over host key in one buffer",
			chunks: []string{"The authenticity of host Password: "},
			want:   []define.Outcome{define.PasswordSent},
		},
		{
			name:   "custom prompt",
			prompt: "Passphrase for key",
			chunks: []string{"Password: ", "Passphrase for key '/root/.ssh/id': "},
			want:   []define.Outcome{define.StillRunning, define.PasswordSent},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyAll(NewClassifier(tt.prompt, nil), tt.chunks...)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d outcomes, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("chunk %d (%q): got %s, want %s", i, tt.chunks[i], got[i], tt.want[i])
				}
			}
		})
	}
}

func TestClassifyHostKeyBeforePassword(t *testing.T) {
	c := NewClassifier("", nil)
	if got := c.Classify([]byte("The authenticity of host ")); got != define.HostKeyUnknownOutcome {
		t.Fatalf("got %s, want %s", got, define.HostKeyUnknownOutcome)
	}
	if c.PasswordSent() {
		t.Fatal("no password must be sent before a host key prompt")
	}
}

func TestClassifyRemembersPassword(t *testing.T) {
	c := NewClassifier("", nil)
	if c.PasswordSent() {
		t.Fatal("PasswordSent() before any prompt")
	}
	c.Classify([]byte("password: "))
	if !c.PasswordSent() {
		t.Fatal("PasswordSent() = false after the first prompt")
	}
}
