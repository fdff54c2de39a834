package cli

import (
	"github.com/spf13/cobra"

	"github.com/ironsheep/image-fx-mcp/internal/catalog"
	"github.com/ironsheep/image-fx-mcp/internal/config"
	"github.com/ironsheep/image-fx-mcp/internal/pipeline"
	"github.com/ironsheep/image-fx-mcp/internal/server"
)

func (a *app) newServeCommand() *cobra.Command {
	var imagesDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server over stdin/stdout",
		Long: `Starts the MCP server. Requests are read from stdin one per line and
responses are written to stdout; logs go to stderr.

With --images-dir (or ` + config.EnvImagesDir + `) every .png, .jpg, .jpeg and
.gif file under the directory is registered in the catalog at startup.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("images-dir") {
				a.cfg.ImagesDir = imagesDir
			}

			cat := catalog.New()
			if a.cfg.ImagesDir != "" {
				if _, err := cat.LoadDir(a.cfg.ImagesDir); err != nil {
					return err
				}
			}

			srv := server.New(cat, &pipeline.Processor{JPEGQuality: a.cfg.JPEGQuality}, a.info.Version)
			return srv.Serve(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&imagesDir, "images-dir", "d", "", "directory of images to register at startup")
	return cmd
}
