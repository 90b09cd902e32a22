package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/formsearch/internal/domain/search/request"
	"github.com/kailas-cloud/formsearch/internal/domain/search/result"
	"github.com/kailas-cloud/formsearch/internal/usecase/eligibility"
)

type searchFlags struct {
	limit       int
	accountType string
}

func newSearchCmd(opts *options) *cobra.Command {
	f := &searchFlags{}
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Rank catalog forms against a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, opts, f, strings.Join(args, " "))
		},
	}
	cmd.Flags().IntVarP(&f.limit, "limit", "n", 0, "Maximum number of results (0 = default)")
	cmd.Flags().StringVar(&f.accountType, "account-type", "", "Mark forms not valid for this account type")
	return cmd
}

func newBrowseCmd(opts *options) *cobra.Command {
	f := &searchFlags{}
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "List catalog forms sorted by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSearch(cmd, opts, f, "")
		},
	}
	cmd.Flags().IntVarP(&f.limit, "limit", "n", 0, "Maximum number of results (0 = default)")
	cmd.Flags().StringVar(&f.accountType, "account-type", "", "Mark forms not valid for this account type")
	return cmd
}

func runSearch(cmd *cobra.Command, opts *options, f *searchFlags, query string) error {
	svc, _, err := loadEngine(opts.catalog)
	if err != nil {
		return err
	}
	req := request.New(query, f.limit).WithAccountType(f.accountType)
	res := svc.Search(cmd.Context(), req)
	items := eligibility.Annotate(res.Items(), req.AccountType())

	if opts.json {
		return printJSON(cmd.OutOrStdout(), res, items)
	}
	printTable(cmd.OutOrStdout(), res, items)
	return nil
}

// searchOutput is the --json rendering of a search.
type searchOutput struct {
	Mode         string       `json:"mode"`
	TotalMatches int          `json:"total_matches"`
	Limited      bool         `json:"limited"`
	Items        []itemOutput `json:"items"`
}

type itemOutput struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	Selectable bool   `json:"selectable"`
}

func printJSON(w io.Writer, res result.Result, items []eligibility.Item) error {
	out := searchOutput{
		Mode:         string(res.Mode()),
		TotalMatches: res.TotalMatches(),
		Limited:      res.Limited(),
		Items:        make([]itemOutput, len(items)),
	}
	for i := range items {
		out.Items[i] = itemOutput{
			Code:       items[i].Form.Code(),
			Name:       items[i].Form.Name(),
			Selectable: items[i].Selectable,
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printTable(w io.Writer, res result.Result, items []eligibility.Item) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No matching forms.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tCODE\tNAME\t")
	for i := range items {
		name := items[i].Form.Name()
		if !items[i].Selectable {
			name += " (not available)"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t\n", i+1, items[i].Form.Code(), name)
	}
	_ = tw.Flush()

	summary := fmt.Sprintf("%d of %d forms (%s)", len(items), res.TotalMatches(), res.Mode())
	if res.Limited() {
		summary += ", more available"
	}
	fmt.Fprintln(w, summary)
}
