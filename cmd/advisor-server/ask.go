// cmd/advisor-server/ask.go
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"advisor-services/internal/dataset"
	studentchat "advisor-services/internal/services/chatbot/student-chat"
	visaguidance "advisor-services/internal/services/visa/visa-guidance"
)

var askService string

// askCmd answers one question against the local datasets without starting
// the server.
var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a single chat or visa question offline",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")

		var reply string
		switch askService {
		case "chat":
			students, err := dataset.LoadStudents(cfg.Data.StudentsPath)
			if err != nil {
				return err
			}
			out, err := studentchat.NewHandler(students, log).Execute(cmd.Context(), &studentchat.Input{UserQuery: query})
			if err != nil {
				return err
			}
			reply = out.Reply
		case "visa":
			visas, err := dataset.LoadVisaCatalog(cfg.Data.VisaPath)
			if err != nil {
				return err
			}
			out, err := visaguidance.NewHandler(visas, log).Execute(cmd.Context(), &visaguidance.Input{UserQuery: query})
			if err != nil {
				return err
			}
			reply = out.Reply
		default:
			return fmt.Errorf("unknown service %q: use chat or visa", askService)
		}

		fmt.Fprintln(cmd.OutOrStdout(), reply)
		return nil
	},
}

func init() {
	askCmd.Flags().StringVarP(&askService, "service", "s", "chat", "chat | visa")
}
