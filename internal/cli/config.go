package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func configCmd() *cobra.Command {
	config := &cobra.Command{
		Use:   "config",
		Short: "Get or set runtime configuration (max_retries, backoff_base)",
	}

	get := &cobra.Command{
		Use:   "get <key>",
		Short: "Print a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			api, closeFn, err := newAPI(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			v, err := api.ConfigGet(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Println(v)
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			api, closeFn, err := newAPI(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			if err = api.ConfigSet(ctx, args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("%s = %s\n", args[0], args[1])
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List every configured key/value pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			api, closeFn, err := newAPI(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			all, err := api.ConfigList(ctx)
			if err != nil {
				return err
			}
			keys := make([]string, 0, len(all))
			for k := range all {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Printf("%s = %s\n", k, all[k])
			}
			return nil
		},
	}

	config.AddCommand(get)
	config.AddCommand(set)
	config.AddCommand(list)
	return config
}
