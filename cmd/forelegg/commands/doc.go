// Package commands defines the forelegg CLI.
//
// Commands
//
//   - assess   Compute the fine for a declaration, alone and split across travelers
//   - rules    Print duty-free quotas and fine schedules
//   - serve    Run the JSON HTTP API
//
// The root command loads configuration and builds the logger before any
// subcommand runs. Results are advisory; a customs officer makes the final
// decision.
package commands
