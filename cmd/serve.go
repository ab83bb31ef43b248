package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/beamline/constants"
	"github.com/jsphweid/beamline/db"
	"github.com/jsphweid/beamline/interval"
	"github.com/jsphweid/beamline/model"
	"github.com/jsphweid/beamline/timesig"
	"github.com/jsphweid/beamline/voice"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the grouping API",
	Long:  `Serves the grouping API`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

func buildVoice(body model.GroupRequestBody) (*voice.Voice, error) {
	ts, err := timesig.New(body.Numerator, body.Denominator)
	if err != nil {
		return nil, err
	}

	var ivs []*interval.RhythmicInterval
	start := 1
	for _, in := range body.Intervals {
		basic, err := model.ParseBasicLength(in.Length)
		if err != nil {
			return nil, err
		}
		length := model.Length{Basic: basic, Dotted: in.Dotted}
		if in.Rest {
			ivs = append(ivs, interval.NewRest(length, start))
		} else {
			heads := make(map[int]model.HeadStyle, len(in.NoteHeads))
			for _, h := range in.NoteHeads {
				heads[h] = model.HeadNormal
			}
			ivs = append(ivs, interval.NewNote(length, start, heads))
		}
		start += length.Units()
	}
	return voice.New(ivs, ts)
}

func intervalResult(iv *interval.RhythmicInterval) model.IntervalResult {
	var heads []int
	for h := range iv.NoteHeads() {
		heads = append(heads, h)
	}
	return model.IntervalResult{
		StartUnit: iv.StartUnit(),
		EndUnit:   iv.EndUnit(),
		Rest:      iv.IsRest(),
		Length:    iv.Length().Basic.String(),
		Dotted:    iv.Length().Dotted,
		NoteHeads: heads,
	}
}

func groupResponse(v *voice.Voice) model.GroupResponse {
	var res model.GroupResponse
	res.VoiceOfRests = v.IsVoiceOfRests()
	for slot, sg := range v.SubGroups() {
		r := model.SubGroupResult{
			StartUnit:     sg.StartUnit(),
			EndUnit:       sg.EndUnit(),
			PaddingFactor: sg.PaddingFactor(),
			StemDirection: v.StemDirection(slot).String(),
		}
		members := sg.Intervals()
		positions := make(map[uuid.UUID]int, len(members))
		for i, iv := range members {
			positions[iv.ID()] = i
			r.Intervals = append(r.Intervals, intervalResult(iv))
		}
		for _, run := range sg.ConnectedIntervals() {
			var beam []int
			for _, iv := range run {
				beam = append(beam, positions[iv.ID()])
			}
			r.Beams = append(r.Beams, beam)
		}
		res.SubGroups = append(res.SubGroups, r)
	}
	return res
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: msg})
}

func HandleGroup(w http.ResponseWriter, r *http.Request) {
	reqBody, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, 400, "Could not read request body")
		return
	}

	var input model.GroupRequestBody
	if err := json.Unmarshal(reqBody, &input); err != nil {
		writeError(w, 400, "Could not unmarshal request body: "+err.Error())
		return
	}

	v, err := buildVoice(input)
	if err != nil {
		writeError(w, 400, err.Error())
		return
	}
	json.NewEncoder(w).Encode(groupResponse(v))
}

func HandleMetadata(w http.ResponseWriter, r *http.Request) {
	filename := mux.Vars(r)["filename"]
	metadatas := db.GetScoreMetadatas([]string{filename})
	metadata, ok := metadatas[filename]
	if !ok {
		writeError(w, 404, "No metadata for "+filename)
		return
	}
	json.NewEncoder(w).Encode(metadata)
}

func serve() {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/group", HandleGroup).Methods("POST")
	router.HandleFunc("/metadata/{filename}", HandleMetadata).Methods("GET")

	addr := constants.GetServeAddr()
	fmt.Printf("Listening on %v\n", addr)
	log.Fatal(http.ListenAndServe(addr, cors.Default().Handler(router)))
}
