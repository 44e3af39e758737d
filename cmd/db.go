package cmd

import (
	"log"

	"github.com/bioforensics/claspy/internal/cellosaurus"
	"github.com/spf13/cobra"
)

var (
	dbSourcePath string
	dbSourceURL  string
	dbDestPath   string
)

// dbCmd retrieves, formats, and installs the Cellosaurus database
var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Retrieve, format, and install the Cellosaurus database",
	Long: `Download the Cellosaurus knowledgebase, extract its STR profiles, and
install them as the local reference database that 'claspy search' loads.

Pass --path to convert an already-downloaded copy of cellosaurus.txt
instead of fetching it from the Expasy FTP mirror.`,
	Example:                    "  claspy db --dest /tmp/cellosaurus.json",
	SuggestionsMinimumDistance: 2,
	Run:                        runDB,
	Aliases:                    []string{"install", "update"},
}

func runDB(cmd *cobra.Command, args []string) {
	var db cellosaurus.DB
	var err error
	if dbSourcePath == "" {
		db, err = cellosaurus.ConvertFromDownload(dbSourceURL)
	} else {
		db, err = cellosaurus.ConvertFromPath(dbSourcePath)
	}
	if err != nil {
		log.Fatalf("%v", err)
	}
	if err := db.Save(dbDestPath); err != nil {
		log.Fatalf("%v", err)
	}
	stderr.Printf("Database written to %s", dbDestPath)
}

// db flags
func init() {
	dbCmd.Flags().StringVarP(&dbSourcePath, "path", "p", "", "install the Cellosaurus database from a local cellosaurus.txt rather than a remote URL")
	dbCmd.Flags().StringVarP(&dbSourceURL, "url", "u", cellosaurus.DefaultURL, "URL to fetch the Cellosaurus flat file from")
	dbCmd.Flags().StringVarP(&dbDestPath, "dest", "d", cellosaurus.DefaultPath(), "destination for the Cellosaurus database in JSON format")

	RootCmd.AddCommand(dbCmd)
}
