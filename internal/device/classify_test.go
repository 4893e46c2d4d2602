// internal/device/classify_test.go
package device

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		name    string
		page    Page
		want    Outcome
		wantErr bool
	}{
		{
			name: "cancel button means running",
			page: Page{StatusCode: 200, Body: "<html>" + MarkerCancelButton + "</html>"},
			want: OutcomeSuccess,
		},
		{
			name: "cancel button wins over other markers",
			page: Page{StatusCode: 200, Body: MarkerSubmitButton + MarkerCancelButton + MarkerWebUIError},
			want: OutcomeSuccess,
		},
		{
			name:    "error banner means rejected",
			page:    Page{StatusCode: 200, Body: "<html>" + MarkerWebUIError + "</html>"},
			want:    OutcomeRejectedByDevice,
			wantErr: true,
		},
		{
			name:    "error banner wins over submit button",
			page:    Page{StatusCode: 200, Body: MarkerSubmitButton + MarkerWebUIError},
			want:    OutcomeRejectedByDevice,
			wantErr: true,
		},
		{
			name:    "submit button alone means form redisplayed",
			page:    Page{StatusCode: 200, Body: "<html>" + MarkerSubmitButton + "</html>"},
			want:    OutcomeSubmissionFailed,
			wantErr: true,
		},
		{
			name:    "no markers means unrecognized page",
			page:    Page{StatusCode: 200, Body: "<html>something new</html>"},
			want:    OutcomeSubmissionFailed,
			wantErr: true,
		},
		{
			name:    "non-2xx fails regardless of body",
			page:    Page{StatusCode: 503, Body: MarkerCancelButton},
			want:    OutcomeSubmissionFailed,
			wantErr: true,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Classify(c.page)
			if got != c.want {
				t.Fatalf("Classify=%v, want %v", got, c.want)
			}
			if c.wantErr && err == nil {
				t.Fatalf("expected error, got nil")
			}
			if !c.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
