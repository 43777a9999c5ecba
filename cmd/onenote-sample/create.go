package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/deploymenttheory/go-onenote-page-client/authenticationhandler"
	"github.com/deploymenttheory/go-onenote-page-client/httpclient"
	"github.com/deploymenttheory/go-onenote-page-client/response"
	"github.com/spf13/cobra"
)

var (
	createOpen       bool
	createImagePath  string
	createAttachPath string
)

// pageCreator sends one kind of sample page.
type pageCreator func(ctx context.Context, client *httpclient.Client) (response.StandardResponse, error)

func newCreateCmd() *cobra.Command {
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a sample page",
	}
	createCmd.PersistentFlags().BoolVar(&createOpen, "open", false, "Print the launch URI of the created page")

	createCmd.AddCommand(&cobra.Command{
		Use:   "simple",
		Short: "Create a page with formatted HTML text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, func(ctx context.Context, client *httpclient.Client) (response.StandardResponse, error) {
				return client.CreateSimplePage(ctx)
			})
		},
	})

	imageCmd := &cobra.Command{
		Use:   "image",
		Short: "Create a page with an inline JPEG image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithFile(cmd, createImagePath, func(ctx context.Context, client *httpclient.Client, file io.Reader) (response.StandardResponse, error) {
				return client.CreatePageWithImage(ctx, file)
			})
		},
	}
	imageCmd.Flags().StringVar(&createImagePath, "image", "", "Path of the JPEG image to embed")
	_ = imageCmd.MarkFlagRequired("image")
	createCmd.AddCommand(imageCmd)

	createCmd.AddCommand(&cobra.Command{
		Use:   "url",
		Short: "Create a page with a snapshot of a web page rendered by the service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, func(ctx context.Context, client *httpclient.Client) (response.StandardResponse, error) {
				return client.CreatePageWithURLSnapshot(ctx)
			})
		},
	})

	createCmd.AddCommand(&cobra.Command{
		Use:   "html",
		Short: "Create a page with a snapshot of embedded HTML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, func(ctx context.Context, client *httpclient.Client) (response.StandardResponse, error) {
				return client.CreatePageWithHTMLSnapshot(ctx)
			})
		},
	})

	attachmentCmd := &cobra.Command{
		Use:   "attachment",
		Short: "Create a page with a PDF attachment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithFile(cmd, createAttachPath, func(ctx context.Context, client *httpclient.Client, file io.Reader) (response.StandardResponse, error) {
				return client.CreatePageWithAttachment(ctx, file)
			})
		},
	}
	attachmentCmd.Flags().StringVar(&createAttachPath, "attachment", "", "Path of the PDF file to attach")
	_ = attachmentCmd.MarkFlagRequired("attachment")
	createCmd.AddCommand(attachmentCmd)

	return createCmd
}

// runWithFile opens path for the duration of the send.
func runWithFile(cmd *cobra.Command, path string, create func(context.Context, *httpclient.Client, io.Reader) (response.StandardResponse, error)) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	return runCreate(cmd, func(ctx context.Context, client *httpclient.Client) (response.StandardResponse, error) {
		return create(ctx, client, file)
	})
}

func runCreate(cmd *cobra.Command, create pageCreator) error {
	out := cmd.OutOrStdout()

	config, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	notifier := newConsoleNotifier(out)
	client, err := httpclient.BuildClient(*config, nil, notifier)
	if err != nil {
		return err
	}

	sessionStatus, info, err := sessionFromEnv(os.LookupEnv, time.Now())
	if err != nil {
		return err
	}
	client.TokenManager.ApplySession(sessionStatus, info)
	if sessionStatus != authenticationhandler.SessionStatusConnected {
		return &AuthRequiredError{}
	}

	result, err := create(cmd.Context(), client)
	if err != nil {
		var transportErr *httpclient.TransportError
		if errors.As(err, &transportErr) {
			return fmt.Errorf("could not reach %s: %w", transportErr.Endpoint, err)
		}
		return err
	}

	renderResult(out, result)

	if failure, ok := result.(*response.CreateError); ok {
		return &PageCreationFailedError{StatusCode: failure.StatusCode, CorrelationID: failure.CorrelationID}
	}

	if createOpen && notifier.canOpenPage() {
		return client.OpenCreatedPage()
	}
	return nil
}
