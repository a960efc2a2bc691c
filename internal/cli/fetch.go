package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/thushan/llmsource/internal/adapter/lister"
	"github.com/thushan/llmsource/internal/app"
	"github.com/thushan/llmsource/internal/core/domain"
	"github.com/thushan/llmsource/pkg/format"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	statusOK          = "ok"
	statusFailed      = "failed"
	statusUnreachable = "unreachable"
	statusSkipped     = "skipped"
)

type fetchReport struct {
	Source  domain.SourceID `json:"source"`
	Host    string          `json:"host"`
	Status  string          `json:"status"`
	Error   string          `json:"error,omitempty"`
	Latency string          `json:"latency,omitempty"`
	Models  []*domain.LLM   `json:"models"`
}

func newFetchCommand(opts *options) *cobra.Command {
	var all, asJSON, verbose bool

	cmd := &cobra.Command{
		Use:   "fetch [source-id...]",
		Short: "Fetch the models of one or more sources",
		Long: `Lists the models each source's server offers and prints them as they would be
stored. Sources without a valid host URL are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !all {
				return errors.New("name at least one source id or pass --all")
			}

			s, err := openSession(cmd.Context(), opts, sessionMode{terminal: !asJSON})
			if err != nil {
				return err
			}
			defer s.Close()

			ids := make([]domain.SourceID, 0, len(args))
			if all {
				for _, source := range s.app.Sources().Sources() {
					ids = append(ids, source.ID)
				}
			} else {
				for _, arg := range args {
					ids = append(ids, domain.SourceID(arg))
				}
			}

			results, err := s.app.FetchSources(cmd.Context(), ids)
			if err != nil {
				return err
			}

			reports := buildReports(results)
			out := cmd.OutOrStdout()
			if asJSON {
				err = writeJSON(out, reports)
			} else {
				err = writeFetchTable(out, reports)
			}
			if err != nil {
				return err
			}

			if verbose {
				if m, ok := s.app.ListerMetrics(); ok {
					writeListerMetrics(cmd.ErrOrStderr(), m)
				}
			}

			if failed := countFailed(reports); failed > 0 {
				return fmt.Errorf("%s failed", format.Count(failed, "source", "sources"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Fetch every configured source")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print list call counters to stderr")

	return cmd
}

func buildReports(results []app.SourceFetch) []fetchReport {
	reports := make([]fetchReport, 0, len(results))
	for _, res := range results {
		report := fetchReport{
			Source: res.SourceID,
			Host:   res.Host,
			Models: res.LLMs,
		}
		switch {
		case res.Skipped:
			report.Status = statusSkipped
		case lister.IsUnreachable(res.Err):
			report.Status = statusUnreachable
			report.Error = res.Err.Error()
		case res.Err != nil:
			report.Status = statusFailed
			report.Error = res.Err.Error()
		default:
			report.Status = statusOK
			report.Latency = format.Latency(res.Latency)
		}
		if report.Models == nil {
			report.Models = []*domain.LLM{}
		}
		reports = append(reports, report)
	}
	return reports
}

func countFailed(reports []fetchReport) int {
	failed := 0
	for _, r := range reports {
		if r.Status == statusFailed || r.Status == statusUnreachable {
			failed++
		}
	}
	return failed
}

func writeListerMetrics(w io.Writer, m lister.ListMetrics) {
	fmt.Fprintf(w, "lister: %s, %d ok, %d failed, average latency %s\n",
		format.Count(int(m.TotalLists), "call", "calls"),
		m.SuccessfulRequests,
		m.FailedRequests,
		format.Latency(m.AverageLatency))
}

func writeJSON(w io.Writer, reports []fetchReport) error {
	data, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeFetchTable(w io.Writer, reports []fetchReport) error {
	summary := [][]string{
		{"SOURCE", "HOST", "STATUS", "MODELS", "LATENCY"},
	}
	models := [][]string{
		{"SOURCE", "MODEL", "LABEL", "CONTEXT"},
	}

	for _, r := range reports {
		summary = append(summary, []string{
			string(r.Source),
			format.OrDash(r.Host),
			statusCell(r),
			strconv.Itoa(len(r.Models)),
			format.OrDash(r.Latency),
		})
		for _, llm := range r.Models {
			models = append(models, []string{
				string(r.Source),
				llm.ID,
				llm.Label,
				strconv.Itoa(llm.ContextTokens),
			})
		}
	}

	tableString, err := pterm.DefaultTable.WithHasHeader().WithData(summary).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, tableString)

	if len(models) > 1 {
		tableString, err = pterm.DefaultTable.WithHasHeader().WithData(models).Srender()
		if err != nil {
			return err
		}
		fmt.Fprintln(w, tableString)
	}
	return nil
}

func statusCell(r fetchReport) string {
	if r.Error != "" {
		return r.Status + ": " + r.Error
	}
	return r.Status
}
