package main

import (
	"github.com/spf13/cobra"

	"github.com/kailas-cloud/formsearch/internal/domain/form"
	catalogrepo "github.com/kailas-cloud/formsearch/internal/repository/catalog"
	searchuc "github.com/kailas-cloud/formsearch/internal/usecase/search"
	"github.com/kailas-cloud/formsearch/internal/version"
)

const defaultCatalog = "config/forms.yaml"

// options are the flags shared by every subcommand.
type options struct {
	catalog string
	json    bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "formsctl",
		Short:        "Search and validate form catalogs",
		SilenceUsage: true, // don't print usage on operational errors
		Long: `formsctl runs the formsearch ranking engine against a catalog file
(.yaml, .yml or .json) without a server.`,
		Version: version.String(),
	}
	root.PersistentFlags().StringVarP(&opts.catalog, "catalog", "c", defaultCatalog, "Catalog file")
	root.PersistentFlags().BoolVar(&opts.json, "json", false, "Print results as JSON")

	root.AddCommand(
		newSearchCmd(opts),
		newBrowseCmd(opts),
		newValidateCmd(opts),
	)
	return root
}

// loadEngine reads the catalog file and indexes it.
func loadEngine(path string) (*searchuc.Service, []form.Form, error) {
	forms, err := catalogrepo.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}
	svc := searchuc.New(searchuc.DefaultTunables(), nil)
	svc.Rebuild(forms)
	return svc, forms, nil
}
