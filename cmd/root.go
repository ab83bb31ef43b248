package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "beamline",
	Short: "Rhythmic grouping engine",
	Long:  `Partitions a measure's notes and rests into beat subgroups and works out padding, stem directions and beams.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
