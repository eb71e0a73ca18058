package main

import (
	"fmt"
	"path/filepath"

	"github.com/manifold/gallium/pkg/image"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// `gallium image` command
func imageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image",
		Short: "Image utilities",
		Long:  "Image utilities.",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "convert <src> <dst>",
		Short: "Converts an image",
		Long:  "Decodes src and writes it to dst in the format named by its extension. A dst without extension keeps the format of src.",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			img, dst, err := convertImage(afero.NewOsFs(), args[0], args[1])
			fatal(err)
			fmt.Printf("%s: %dx%d from %s\n", dst, img.Width(), img.Height(), img.Format())
		},
	})
	return cmd
}

// convertImage returns the decoded image and the path it was written to.
func convertImage(fs afero.Fs, src, dst string) (*image.Image, string, error) {
	codec := &image.Codec{Fs: fs}
	img, err := codec.ReadFile(src)
	if err != nil {
		return nil, "", err
	}
	if filepath.Ext(dst) == "" {
		dst += image.Ext(img.Format())
	}
	return img, dst, codec.WriteToFile(img, dst)
}
