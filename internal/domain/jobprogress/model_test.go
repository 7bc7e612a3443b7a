package jobprogress

import "testing"

func TestProgressFinalize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		in          Progress
		wantStatus  string
		wantPercent float64
	}{
		{name: "empty job", in: Progress{Status: StatusProcessing}, wantStatus: StatusProcessing, wantPercent: 0},
		{name: "partial", in: Progress{Total: 250, Processed: 100, Status: StatusProcessing}, wantStatus: StatusProcessing, wantPercent: 40},
		{name: "done", in: Progress{Total: 250, Processed: 250, Status: StatusProcessing}, wantStatus: StatusCompleted, wantPercent: 100},
		{name: "completed with nothing to do", in: Progress{Status: StatusCompleted}, wantStatus: StatusCompleted, wantPercent: 0},
		{name: "manager error sticks", in: Progress{Total: 10, Processed: 10, Status: StatusErrorManagerTask}, wantStatus: StatusErrorManagerTask, wantPercent: 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := tc.in
			p.Finalize()
			if p.Status != tc.wantStatus {
				t.Fatalf("status: got %s want %s", p.Status, tc.wantStatus)
			}
			if p.ProgressPercent != tc.wantPercent {
				t.Fatalf("percent: got %v want %v", p.ProgressPercent, tc.wantPercent)
			}
		})
	}
}
