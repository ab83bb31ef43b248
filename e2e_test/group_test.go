//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jsphweid/beamline/cmd"
	"github.com/jsphweid/beamline/model"
	"github.com/stretchr/testify/assert"
)

func createGroupReqBody(body model.GroupRequestBody) io.Reader {
	data, err := json.Marshal(body)
	if err != nil {
		panic(err.Error())
	}
	return bytes.NewReader(data)
}

func postGroup(t *testing.T, body model.GroupRequestBody) (*http.Response, []byte) {
	req := httptest.NewRequest(http.MethodPost, "/group", createGroupReqBody(body))
	w := httptest.NewRecorder()
	cmd.HandleGroup(w, req)

	resp := w.Result()
	respBody, _ := io.ReadAll(resp.Body)
	return resp, respBody
}

func TestEighthsAndQuartersE2E(t *testing.T) {
	eighth := model.IntervalInput{Length: "eighth", NoteHeads: []int{4}}
	quarter := model.IntervalInput{Length: "quarter", NoteHeads: []int{4}}
	resp, respBody := postGroup(t, model.GroupRequestBody{
		Numerator:   4,
		Denominator: 4,
		Intervals:   []model.IntervalInput{eighth, eighth, eighth, eighth, quarter, quarter},
	})

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)

	var res model.GroupResponse
	assert.Nil(json.Unmarshal(respBody, &res))
	assert.Len(res.SubGroups, 4)
	assert.False(res.VoiceOfRests)

	var paddings []int
	for _, sg := range res.SubGroups {
		paddings = append(paddings, sg.PaddingFactor)
		assert.Equal("up", sg.StemDirection)
	}
	assert.Equal([]int{1, 1, 1, 0}, paddings)

	assert.Equal([][]int{{0, 1}}, res.SubGroups[0].Beams)
	assert.Equal([][]int{{0, 1}}, res.SubGroups[1].Beams)
	assert.Nil(res.SubGroups[2].Beams)
	assert.Nil(res.SubGroups[3].Beams)
}

func TestRestsOnlyVoiceE2E(t *testing.T) {
	rest := model.IntervalInput{Length: "half", Rest: true}
	resp, respBody := postGroup(t, model.GroupRequestBody{
		Numerator:   4,
		Denominator: 4,
		Intervals:   []model.IntervalInput{rest, rest},
	})

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)

	var res model.GroupResponse
	assert.Nil(json.Unmarshal(respBody, &res))
	assert.True(res.VoiceOfRests)
}

func TestOverfullMeasureIsRejectedE2E(t *testing.T) {
	quarter := model.IntervalInput{Length: "quarter", NoteHeads: []int{4}}
	resp, respBody := postGroup(t, model.GroupRequestBody{
		Numerator:   3,
		Denominator: 4,
		Intervals:   []model.IntervalInput{quarter, quarter, quarter, quarter},
	})

	assert := assert.New(t)
	assert.Equal(400, resp.StatusCode)

	var res model.ErrorResponse
	assert.Nil(json.Unmarshal(respBody, &res))
	assert.NotEmpty(res.Error)
}
