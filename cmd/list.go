package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/signalnine/tmc/internal/workdir"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the exercises of the current course",
		RunE: func(cmd *cobra.Command, args []string) error {
			wd, err := workdir.Find(".")
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Course: %s\n", wd.Course.Name)
			fmt.Fprintln(out, "\nExercises:")
			for _, e := range wd.Course.Exercises {
				mark := ""
				if _, err := os.Stat(filepath.Join(wd.Root, e.Name)); err != nil {
					mark = " (not downloaded)"
				}
				fmt.Fprintf(out, "  - %s%s\n", e.Name, mark)
			}
			return nil
		},
	}
}
