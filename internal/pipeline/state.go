// SPDX-License-Identifier: EPL-2.0

package pipeline

// State is a step of the speech-to-speech pipeline.
type State int

const (
	Idle State = iota
	Listening
	Encoding
	Transcribing
	Translating
	Synthesizing
	Ready
	Failed
)

var stateNames = [...]string{
	Idle:         "idle",
	Listening:    "listening",
	Encoding:     "encoding",
	Transcribing: "transcribing",
	Translating:  "translating",
	Synthesizing: "synthesizing",
	Ready:        "ready",
	Failed:       "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Busy reports whether the pipeline is working on a recording and cannot be
// reset.
func (s State) Busy() bool {
	return s >= Listening && s <= Synthesizing
}

var transitions = map[State][]State{
	Idle:         {Listening, Idle},
	Listening:    {Encoding, Failed},
	Encoding:     {Transcribing, Failed},
	Transcribing: {Translating, Failed},
	Translating:  {Synthesizing, Failed},
	Synthesizing: {Ready, Failed},
	Ready:        {Listening, Idle},
	Failed:       {Listening, Idle},
}

// CanTransition reports whether the state machine allows from -> to.
func CanTransition(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Observer is called after every state change, outside the session lock.
type Observer func(from, to State)
