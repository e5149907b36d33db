// Command gitload fires a one-shot batch of git requests against a remote.
//
// It is a smoke driver for the gitload library, not a load-test harness:
// there is no scenario DSL, scheduling, or metric aggregation. Each
// simulated user runs its operation sequence on its own goroutine, matching
// the one-user-one-thread concurrency contract.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/loadworks/gitload"
)

var (
	cfgFile string
	users   int
	ops     []string
	hook    string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "gitload <remote-url>",
	Short: "Drive git clone/fetch/pull/push requests against a remote",
	Long: `gitload executes a batch of git protocol operations against a target
repository, one simulated user per goroutine, and logs the name, elapsed
time and status of every request.

The remote URL scheme picks the transport: ssh uses the configured private
key, http/https use basic credentials.`,
	Args: cobra.ExactArgs(1),
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default: gitload.yaml in XDG config dir or cwd)")
	rootCmd.Flags().IntVarP(&users, "users", "u", 1, "number of simulated users")
	rootCmd.Flags().StringSliceVar(&ops, "ops", []string{"clone"}, "operation sequence per user (clone,fetch,pull,push)")
	rootCmd.Flags().StringVar(&hook, "hook", gitload.DefaultHook, "post-clone hook resource; empty disables")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	level := "info"
	if verbose {
		level = "debug"
	}
	log := gitload.NewLogger(gitload.LoggerOptions{
		Level:  level,
		Format: "pretty",
	})

	cfg, err := gitload.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	remoteURL := args[0]
	group, ctx := errgroup.WithContext(cmd.Context())

	for i := 0; i < users; i++ {
		user := fmt.Sprintf("user-%d", i)
		group.Go(func() error {
			for _, op := range ops {
				req := gitload.New(gitload.KindOf(op), gitload.Params{
					URL:    remoteURL,
					User:   user,
					Config: cfg,
					Logger: &log,
				})
				if clone, ok := req.(*gitload.Clone); ok {
					clone.Hook = hook
				}

				start := time.Now()
				resp := req.Send(ctx)
				log.Info().
					Str("name", req.Name()).
					Str("user", user).
					Dur("elapsed", time.Since(start)).
					Stringer("status", resp.HarnessStatus()).
					Msg("request done")
			}
			return nil
		})
	}

	return group.Wait()
}
