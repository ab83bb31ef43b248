package cmd

import (
	"fmt"
	"strconv"

	"github.com/jsphweid/beamline/midi"
	"github.com/jsphweid/beamline/timesig"
	"github.com/jsphweid/beamline/voice"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file> [numerator denominator]",
	Short: "Inspects the grouping of a midi file's first measure",
	Long:  `Inspects the grouping of a midi file's first measure`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 && len(args) != 3 {
			panic("Need a midi file, optionally followed by a time signature...")
		}
		numerator, denominator := 4, 4
		if len(args) == 3 {
			var err error
			if numerator, err = strconv.Atoi(args[1]); err != nil {
				panic(err)
			}
			if denominator, err = strconv.Atoi(args[2]); err != nil {
				panic(err)
			}
		}
		inspect(args[0], numerator, denominator)
	},
}

func inspect(path string, numerator, denominator int) {
	s, err := midi.ReadMidiFile(path)
	if err != nil {
		panic("Could not read midi file: " + err.Error())
	}
	ts, err := timesig.New(numerator, denominator)
	if err != nil {
		panic(err)
	}
	ivs, err := midi.ExtractIntervals(s, ts)
	if err != nil {
		panic("Could not extract intervals: " + err.Error())
	}
	v, err := voice.New(ivs, ts)
	if err != nil {
		panic(err)
	}
	printVoice(v)
}

func printVoice(v *voice.Voice) {
	fmt.Printf("%v, %v intervals\n", v.TimeSignature(), len(v.Intervals()))
	for slot, sg := range v.SubGroups() {
		fmt.Printf("subgroup %v [%v-%v] padding=%v stem=%v\n",
			slot, sg.StartUnit(), sg.EndUnit(), sg.PaddingFactor(), v.StemDirection(slot))
		for _, iv := range sg.Intervals() {
			fmt.Printf("  %v\n", iv)
		}
		for i, run := range sg.ConnectedIntervals() {
			fmt.Printf("  beam %v: %v notes\n", i, len(run))
		}
	}
}
