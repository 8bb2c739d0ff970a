package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"student-performance-dashboard/utils"
)

func newHashPasswordCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash for ADMIN_PASSWORD_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := utils.HashPassword(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
