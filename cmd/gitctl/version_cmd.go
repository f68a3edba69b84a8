package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/gitctl/internal/git"
	"github.com/raphi011/gitctl/internal/output"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   "Show gitctl and git versions",
		GroupID: GroupConfig,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, c, _, err := checkout(cmd)
			if err != nil {
				return err
			}
			e, err := envFromContext(ctx)
			if err != nil {
				return err
			}

			gitVersion := c.Version(ctx, git.CallOptions{})
			out := output.FromContext(ctx)
			if e.format == "json" {
				return out.JSON(struct {
					Gitctl     string          `json:"gitctl"`
					Git        string          `json:"git"`
					GitVersion git.VersionInfo `json:"git_version"`
				}{
					Gitctl:     version,
					Git:        gitVersion,
					GitVersion: c.VersionInfo(ctx, git.CallOptions{}),
				})
			}
			out.Println(versionString())
			out.Printf("git %s\n", gitVersion)
			return nil
		},
	}
}
