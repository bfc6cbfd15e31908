package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/hireflow/interview-agent/internal/app/dialogue"
	"github.com/hireflow/interview-agent/internal/domain"
)

// Runner drives one interactive interview over a line-based console: the
// CLI channel adapter. One Runner is one session.
type Runner struct {
	svc  *dialogue.Service
	flow string
	in   *bufio.Scanner
	out  io.Writer
}

func New(svc *dialogue.Service, flowName string, in io.Reader, out io.Writer) *Runner {
	return &Runner{
		svc:  svc,
		flow: flowName,
		in:   bufio.NewScanner(in),
		out:  out,
	}
}

// Run conducts the interview until a terminal reply or end of input. End of
// input counts as a disconnect: the partial transcript is persisted.
func (r *Runner) Run(ctx context.Context) error {
	fmt.Fprintln(r.out, "TECHNICAL INTERVIEW")
	fmt.Fprintln(r.out, "Type 'exit' anytime to quit")
	fmt.Fprintln(r.out)

	fmt.Fprint(r.out, "Candidate name: ")
	candidate := r.readLine()
	if candidate == "" {
		candidate = "Test Candidate"
	}

	key := domain.SessionKey("cli-" + uuid.NewString())

	reply, err := r.svc.Start(ctx, key, r.flow, candidate)
	if err != nil {
		return fmt.Errorf("starting interview: %w", err)
	}

	for n := 1; ; n++ {
		fmt.Fprintf(r.out, "\nQUESTION %d: %s\n", n, reply.Text)
		fmt.Fprint(r.out, "YOUR ANSWER: ")

		if !r.in.Scan() {
			if err := r.svc.ForceEnd(ctx, key); err != nil {
				return fmt.Errorf("ending interview: %w", err)
			}
			fmt.Fprintln(r.out, "\nInterview interrupted.")
			return r.in.Err()
		}
		answer := strings.TrimSpace(r.in.Text())

		reply, err = r.svc.HandleAnswer(ctx, key, answer)
		if err != nil {
			return fmt.Errorf("processing answer: %w", err)
		}

		if reply.Terminal {
			break
		}
	}

	if reply.Evaluation != nil {
		r.printEvaluation(reply.Evaluation)
	}
	fmt.Fprintf(r.out, "\n%s\n", reply.Text)
	return nil
}

func (r *Runner) printEvaluation(ev *domain.EvaluationReport) {
	sep := strings.Repeat("=", 50)
	fmt.Fprintln(r.out, "\nFINAL EVALUATION")
	fmt.Fprintln(r.out, sep)
	if ev.OverallScore > 0 {
		fmt.Fprintf(r.out, "Overall score: %d/100\n", ev.OverallScore)
	}
	if ev.Recommendation != domain.RecommendationUnknown {
		fmt.Fprintf(r.out, "Recommendation: %s\n", ev.Recommendation)
	}
	fmt.Fprintln(r.out, ev.Feedback)
	fmt.Fprintln(r.out, sep)
}

func (r *Runner) readLine() string {
	if !r.in.Scan() {
		return ""
	}
	return strings.TrimSpace(r.in.Text())
}
