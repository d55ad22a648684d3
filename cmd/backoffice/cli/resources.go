package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/arianatravel/backoffice/internal/core/domain"
)

func newHotelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hotels",
		Short: "Manage hotels",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List hotels",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fetchGuarded(cmd, func(ctx context.Context, a *app) (json.RawMessage, error) {
				return a.client.ListHotels(ctx)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show one hotel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return fetchGuarded(cmd, func(ctx context.Context, a *app) (json.RawMessage, error) {
				return a.client.Hotel(ctx, args[0])
			})
		},
	})
	cmd.AddCommand(newPayloadCmd("create", "Create a hotel from a JSON document", 0,
		func(ctx context.Context, a *app, args []string, payload json.RawMessage) (json.RawMessage, error) {
			return a.client.CreateHotel(ctx, payload)
		}))
	cmd.AddCommand(newPayloadCmd("update <id>", "Replace a hotel with a JSON document", 1,
		func(ctx context.Context, a *app, args []string, payload json.RawMessage) (json.RawMessage, error) {
			return a.client.UpdateHotel(ctx, args[0], payload)
		}))
	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a hotel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			return a.runGuarded(cmd.Context(), func(domain.User) error {
				return a.client.DeleteHotel(cmd.Context(), args[0])
			})
		},
	})

	return cmd
}

func newToursCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tours",
		Short: "Manage group tours",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List group tours",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fetchGuarded(cmd, func(ctx context.Context, a *app) (json.RawMessage, error) {
				return a.client.ListTours(ctx)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show one tour",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return fetchGuarded(cmd, func(ctx context.Context, a *app) (json.RawMessage, error) {
				return a.client.Tour(ctx, args[0])
			})
		},
	})
	cmd.AddCommand(newPayloadCmd("create", "Create a group tour from a JSON document", 0,
		func(ctx context.Context, a *app, args []string, payload json.RawMessage) (json.RawMessage, error) {
			return a.client.CreateTour(ctx, payload)
		}))
	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a group tour",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			return a.runGuarded(cmd.Context(), func(domain.User) error {
				return a.client.DeleteTour(cmd.Context(), args[0])
			})
		},
	})

	return cmd
}

func newBookingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "Manage bookings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List bookings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fetchGuarded(cmd, func(ctx context.Context, a *app) (json.RawMessage, error) {
				return a.client.ListBookings(ctx)
			})
		},
	})
	cmd.AddCommand(newPayloadCmd("create", "Create a booking from a JSON document", 0,
		func(ctx context.Context, a *app, args []string, payload json.RawMessage) (json.RawMessage, error) {
			return a.client.CreateBooking(ctx, payload)
		}))
	cmd.AddCommand(&cobra.Command{
		Use:   "update-status <id> <status>",
		Short: "Set a booking's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := json.Marshal(map[string]string{"status": args[1]})
			if err != nil {
				return err
			}
			return fetchGuarded(cmd, func(ctx context.Context, a *app) (json.RawMessage, error) {
				return a.client.UpdateBookingStatus(ctx, args[0], payload)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			return a.runGuarded(cmd.Context(), func(domain.User) error {
				return a.client.DeleteBooking(cmd.Context(), args[0])
			})
		},
	})

	return cmd
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show admin dashboard statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fetchGuarded(cmd, func(ctx context.Context, a *app) (json.RawMessage, error) {
				return a.client.Stats(ctx)
			})
		},
	}
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the client version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("backoffice %s\n", version)
		},
	}
}

// newPayloadCmd builds a subcommand that sends a caller-supplied JSON
// document to the API. The document comes from --file, or from stdin
// when the flag is "-" or omitted.
func newPayloadCmd(use, short string, idArgs int, send func(ctx context.Context, a *app, args []string, payload json.RawMessage) (json.RawMessage, error)) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(idArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := readPayload(file)
			if err != nil {
				return err
			}
			return fetchGuarded(cmd, func(ctx context.Context, a *app) (json.RawMessage, error) {
				return send(ctx, a, args, payload)
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "JSON document to send (- for stdin)")
	return cmd
}

func readPayload(file string) (json.RawMessage, error) {
	var data []byte
	var err error
	if file == "" || file == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("payload is not valid JSON")
	}
	return data, nil
}

// fetchGuarded runs a resource call behind the gate and pretty-prints
// the raw JSON the server returned.
func fetchGuarded(cmd *cobra.Command, fetch func(ctx context.Context, a *app) (json.RawMessage, error)) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	return a.runGuarded(cmd.Context(), func(domain.User) error {
		data, err := fetch(cmd.Context(), a)
		if err != nil {
			return err
		}
		return printJSON(data)
	})
}

func printJSON(data json.RawMessage) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		_, werr := os.Stdout.Write(data)
		return werr
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(os.Stdout)
	return err
}
