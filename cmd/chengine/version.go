package main

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func getVersionString() string {
	var details []string

	runtimeInfo, ok := debug.ReadBuildInfo()
	if ok {
		details = append(details, fmt.Sprintf("go: %s", runtimeInfo.GoVersion))

		buildTags := "none"
		useVcs := false
		for _, setting := range runtimeInfo.Settings {
			switch setting.Key {
			case "-tags":
				if setting.Value != "" {
					buildTags = setting.Value
				}
			case "vcs.revision":
				if commit == "" {
					commit = setting.Value
					useVcs = true
				}
			case "vcs.time":
				if date == "" {
					date = setting.Value
				}
			}
		}

		if useVcs && vcsModified(runtimeInfo.Settings) {
			commit += "-dirty"
		}

		details = append(details, fmt.Sprintf("tags: %s", buildTags))
	} else {
		details = append(details, "go: unknown", "tags: unknown")
	}

	if commit != "" {
		details = append(details, fmt.Sprintf("commit: %s", commit))
	}

	if date != "" {
		details = append(details, fmt.Sprintf("built: %s", date))
	}

	return fmt.Sprintf("%s (%s)", version, strings.Join(details, ", "))
}

func vcsModified(settings []debug.BuildSetting) bool {
	for _, setting := range settings {
		if setting.Key == "vcs.modified" {
			return setting.Value == "true"
		}
	}
	return false
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version of chengine",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), getVersionString())
		},
	}
}
