package cli

import (
	"encoding/json"
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// BuildInfo carries values injected at link time.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"date"`
}

// resolve fills unset fields from the embedded module build information.
func (b BuildInfo) resolve() BuildInfo {
	if b.Version == "" {
		b.Version = "dev"
	}
	if b.Commit == "" {
		b.Commit = "none"
	}
	if b.BuildDate == "" {
		b.BuildDate = "unknown"
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return b
	}
	if b.Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		b.Version = info.Main.Version
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if b.Commit == "none" {
				b.Commit = setting.Value
			}
		case "vcs.time":
			if b.BuildDate == "unknown" {
				b.BuildDate = setting.Value
			}
		}
	}
	return b
}

// String formats b as "v1.2.3 (commit, date)".
func (b BuildInfo) String() string {
	b = b.resolve()
	v := b.Version
	if len(v) > 0 && v[0] != 'v' && v != "dev" {
		v = "v" + v
	}
	return fmt.Sprintf("%s (%s, %s)", v, b.Commit, b.BuildDate)
}

type versionOutput struct {
	BuildInfo
	Go   string `json:"go"`
	OS   string `json:"os"`
	Arch string `json:"arch"`
}

func newVersionCommand(info BuildInfo) *cobra.Command {
	var jsonOutput bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show printmock version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(versionOutput{
					BuildInfo: info.resolve(),
					Go:        runtime.Version(),
					OS:        runtime.GOOS,
					Arch:      runtime.GOARCH,
				})
			}
			fmt.Fprintf(out, "printmock %s\n", info)
			fmt.Fprintf(out, "%s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	return cmd
}
