package cmd

import (
	"fmt"
	"time"

	"github.com/bep/debounce"
	"github.com/jsphweid/beamline/interval"
	"github.com/jsphweid/beamline/midi"
	"github.com/jsphweid/beamline/model"
	"github.com/jsphweid/beamline/timesig"
	"github.com/jsphweid/beamline/util"
	"github.com/jsphweid/beamline/voice"
	"github.com/spf13/cobra"
	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
)

func init() {
	rootCmd.AddCommand(listenCmd)
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Groups live midi input",
	Long:  `Groups live midi input`,
	Run: func(cmd *cobra.Command, args []string) {
		listen()
	},
}

func printGrouping(ivs []*interval.RhythmicInterval, ts *timesig.TimeSignature) {
	v, err := voice.New(ivs, ts)
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		return
	}
	printVoice(v)
}

func listen() {
	defer gomidi.CloseDriver()
	in, err := gomidi.InPort(0)
	if err != nil {
		fmt.Println("can't find a midi input")
		return
	}

	ts, err := timesig.New(4, 4)
	if err != nil {
		panic(err)
	}

	var ivs []*interval.RhythmicInterval
	nextStart := 1
	pressed := make(map[uint8]bool)
	held := make(map[uint8]bool)
	regroup := debounce.New(200 * time.Millisecond)

	// every batch of overlapping presses becomes one eighth-note interval;
	// a full measure starts the sequence over
	commit := func() {
		length := model.Length{Basic: model.Eighth}
		if nextStart+length.Units()-1 > ts.TotalUnits() {
			ivs = nil
			nextStart = 1
		}
		heads := make(map[int]model.HeadStyle, len(held))
		for _, key := range util.GetKeys(held) {
			heads[midi.NoteHeight(key)] = model.HeadNormal
		}
		ivs = append(ivs, interval.NewNote(length, nextStart, heads))
		nextStart += length.Units()
		held = make(map[uint8]bool)

		grouped := ivs
		regroup(func() { printGrouping(grouped, ts) })
	}

	stop, err := gomidi.ListenTo(in, func(msg gomidi.Message, timestampms int32) {
		var channel, key, velocity uint8
		switch {
		case msg.GetNoteStart(&channel, &key, &velocity):
			pressed[key] = true
			held[key] = true
		case msg.GetNoteEnd(&channel, &key):
			delete(pressed, key)
			if len(pressed) == 0 && len(held) > 0 {
				commit()
			}
		default:
			// ignore
		}
	}, gomidi.UseSysEx())

	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		return
	}

	time.Sleep(time.Hour * 24)
	stop()
}
