package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sachcu/marketplace-client/internal/core/domain"
)

var imagesCmd = &cobra.Command{
	Use:   "images",
	Short: "Upload and remove listing images",
}

var imagesUploadCmd = &cobra.Command{
	Use:   "upload FILE",
	Short: "Upload an image and print its stored file name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		return withClient(cmd, domain.RoleUser, func(ctx context.Context, a *app) error {
			res, err := a.client.Images.Upload(ctx, filepath.Base(args[0]), f)
			if err != nil {
				return err
			}
			return render(cmd, res, line("%s\t%s\t%d bytes", res.FileName, res.FileURL, res.FileSize))
		})
	},
}

var imagesDeleteCmd = &cobra.Command{
	Use:   "delete FILE_NAME",
	Short: "Delete an uploaded image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd, domain.RoleUser, func(ctx context.Context, a *app) error {
			if err := a.client.Images.Delete(ctx, args[0]); err != nil {
				return err
			}
			return render(cmd, map[string]any{"fileName": args[0], "deleted": true}, line("deleted %s", args[0]))
		})
	},
}

func init() {
	imagesCmd.AddCommand(imagesUploadCmd, imagesDeleteCmd)
}
