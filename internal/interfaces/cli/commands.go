package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/erp/bcadapter/internal/domain/erp"
	"github.com/spf13/cobra"
)

type backendFunc func() (*Backend, error)

func newTokenCommand(backend backendFunc) *cobra.Command {
	var show bool
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Acquire an access token and print its lifetime",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := backend()
			if err != nil {
				return err
			}
			cred, err := b.Tokens.Credential(cmd.Context())
			if err != nil {
				return err
			}
			out := map[string]any{
				"token_type": cred.TokenType,
				"issued_at":  cred.IssuedAt.Format(time.RFC3339),
				"expires_at": cred.ExpiresAt().Format(time.RFC3339),
			}
			if show {
				out["access_token"] = cred.AccessToken
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().BoolVar(&show, "show", false, "Include the access token in the output")
	return cmd
}

func newItemsCommand(backend backendFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Read items",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "get NUMBER",
		Short: "Print one item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := backend()
			if err != nil {
				return err
			}
			items, err := b.Items.Query(cmd.Context(), erp.Where(erp.FieldNumber, args[0]))
			if err != nil {
				return err
			}
			if len(items) == 0 {
				return fmt.Errorf("item %s: %w", args[0], errNotFound)
			}
			return printJSON(cmd.OutOrStdout(), items[0])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print every item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := backend()
			if err != nil {
				return err
			}
			items, err := b.Items.Query(cmd.Context(), erp.Query{})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), items)
		},
	})
	return cmd
}

func newBomsCommand(backend backendFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boms",
		Short: "Read production BOMs",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "get NUMBER",
		Short: "Print a production BOM with its rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := backend()
			if err != nil {
				return err
			}
			headers, err := b.BomHeaders.Query(cmd.Context(), erp.Where(erp.FieldNumber, args[0]))
			if err != nil {
				return err
			}
			if len(headers) == 0 {
				return fmt.Errorf("production BOM %s: %w", args[0], errNotFound)
			}
			return printJSON(cmd.OutOrStdout(), headers[0])
		},
	})
	return cmd
}

func newDocumentsCommand(backend backendFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "documents",
		Short: "Read item attachments",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list NUMBER",
		Short: "List the attachments of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := backend()
			if err != nil {
				return err
			}
			docs, err := b.Documents.Query(cmd.Context(), erp.Where(erp.FieldNumber, args[0]))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), docs)
		},
	})

	var output string
	download := &cobra.Command{
		Use:   "download NUMBER FILE_NAME",
		Short: "Write the payload of an attachment to a file or stdout",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc := erp.Document{Number: args[0], FileName: args[1]}
			b, err := backend()
			if err != nil {
				return err
			}
			data, err := b.Documents.Download(cmd.Context(), doc)
			if err != nil {
				return err
			}
			if data == nil {
				return fmt.Errorf("document %s/%s: %w", doc.Number, doc.FileName, errNotFound)
			}
			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return os.WriteFile(output, data, 0o644)
		},
	}
	download.Flags().StringVarP(&output, "output", "o", "", "Destination file (default stdout)")
	cmd.AddCommand(download)
	return cmd
}

func newDirectoryCommand(backend backendFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "directory",
		Short: "List the company's code tables and the configured codes missing from them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := backend()
			if err != nil {
				return err
			}
			report, err := b.Directory.Check(cmd.Context())
			if err != nil {
				return err
			}
			if err := printJSON(cmd.OutOrStdout(), report); err != nil {
				return err
			}
			if len(report.Missing) > 0 {
				return fmt.Errorf("%d configured codes are missing", len(report.Missing))
			}
			return nil
		},
	}
}
