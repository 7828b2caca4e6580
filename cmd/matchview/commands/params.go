package commands

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/matchview/internal/core/domain"
	"go.trai.ch/zerr"
)

// queryFlag maps a typed command flag onto a view query parameter.
type queryFlag struct {
	name  string
	param string
	usage string
	text  bool
}

func addQueryFlags(cmd *cobra.Command, flags []queryFlag) {
	for _, f := range flags {
		if f.text {
			cmd.Flags().String(f.name, "", f.usage)
			continue
		}
		cmd.Flags().Int(f.name, 0, f.usage)
	}
	cmd.Flags().StringArray("param", nil, "Raw query parameter as key=value (repeatable)")
}

// queryValues collects the flags the user set, then applies --param overrides.
func queryValues(cmd *cobra.Command, flags []queryFlag) (url.Values, error) {
	values := url.Values{}
	for _, f := range flags {
		if !cmd.Flags().Changed(f.name) {
			continue
		}
		if f.text {
			v, _ := cmd.Flags().GetString(f.name)
			values.Set(f.param, v)
			continue
		}
		v, _ := cmd.Flags().GetInt(f.name)
		values.Set(f.param, strconv.Itoa(v))
	}

	raw, _ := cmd.Flags().GetStringArray("param")
	for _, kv := range raw {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidInput, "expected key=value"), "param", kv)
		}
		values.Add(key, value)
	}
	return values, nil
}
