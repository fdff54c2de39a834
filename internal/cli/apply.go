package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-fx-mcp/internal/pipeline"
	"github.com/ironsheep/image-fx-mcp/internal/transform"
)

func (a *app) newApplyCommand() *cobra.Command {
	var (
		algorithm string
		params    map[string]string
	)

	cmd := &cobra.Command{
		Use:   "apply <input> <output>",
		Short: "Transform one image file",
		Long: `Applies one algorithm to <input> and writes the result to <output>. The
output format follows the extension of <output> when it names a writable
format (png, jpg, gif, bmp, tiff) and the input's format otherwise, with PNG
standing in for WebP. Animated GIFs keep their frames and delays.

  image-fx apply in.png out.png -a scale -p width=320,height=200
  image-fx apply anim.gif out.gif -a flip -p axis=H`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			proc := &pipeline.Processor{JPEGQuality: a.cfg.JPEGQuality}
			out, err := proc.ProcessFile(args[0], args[1], algorithm, transform.Params(params))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %dx%d, %d frame(s), %s, %s\n",
				args[1], out.Width, out.Height, out.Frames, out.Format, out.Hash)
			return nil
		},
	}

	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "", "algorithm to apply (see \"image-fx algorithms\")")
	cmd.Flags().StringToStringVarP(&params, "param", "p", nil, "algorithm parameters as key=value pairs")
	_ = cmd.MarkFlagRequired("algorithm")
	return cmd
}
