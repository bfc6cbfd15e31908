package httpadapter

import (
	"encoding/xml"
	"net/http"
	"net/url"
)

// Minimal TwiML rendering for the voice flow. Only the verbs the interview
// needs: Gather-with-Say to ask and listen, Say+Hangup to close.

type twimlResponse struct {
	XMLName xml.Name     `xml:"Response"`
	Gather  *twimlGather `xml:"Gather,omitempty"`
	Say     *twimlSay    `xml:"Say,omitempty"`
	Hangup  *twimlHangup `xml:"Hangup,omitempty"`
}

type twimlGather struct {
	Input         string    `xml:"input,attr"`
	Action        string    `xml:"action,attr"`
	Method        string    `xml:"method,attr"`
	Timeout       int       `xml:"timeout,attr"`
	SpeechTimeout string    `xml:"speechTimeout,attr"`
	Language      string    `xml:"language,attr"`
	Say           *twimlSay `xml:"Say"`
}

type twimlSay struct {
	Voice    string `xml:"voice,attr,omitempty"`
	Language string `xml:"language,attr,omitempty"`
	Text     string `xml:",chardata"`
}

type twimlHangup struct{}

// gatherQuestion speaks the question and listens for a spoken answer,
// posting the result back to the answer endpoint.
func gatherQuestion(question, callSid string) twimlResponse {
	return twimlResponse{
		Gather: &twimlGather{
			Input:         "speech",
			Action:        "/voice/answer?call_sid=" + url.QueryEscape(callSid),
			Method:        http.MethodPost,
			Timeout:       10,
			SpeechTimeout: "auto",
			Language:      "en-US",
			Say:           &twimlSay{Voice: "alice", Language: "en-US", Text: question},
		},
	}
}

// sayAndHangup speaks a final utterance and ends the call.
func sayAndHangup(text string) twimlResponse {
	return twimlResponse{
		Say:    &twimlSay{Voice: "alice", Language: "en-US", Text: text},
		Hangup: &twimlHangup{},
	}
}

func writeTwiML(w http.ResponseWriter, resp twimlResponse) {
	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(xml.Header))
	_ = xml.NewEncoder(w).Encode(resp)
}
