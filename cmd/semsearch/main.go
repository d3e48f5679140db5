// Command semsearch is the semantic document search CLI.
package main

import "github.com/custodia-labs/semsearch-cli/internal/adapters/driving/cli"

func main() {
	cli.Execute()
}
