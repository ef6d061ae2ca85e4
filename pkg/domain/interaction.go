package domain

// Interaction is a question presented to the learner and the response recorded for it.
type Interaction struct {
	ID              string   `json:"id" yaml:"id"`
	QuestionRef     string   `json:"question_ref" yaml:"question_ref"`
	QuestionType    string   `json:"question_type" yaml:"question_type"`
	Options         []string `json:"options,omitempty" yaml:"options,omitempty"`
	LearnerResponse string   `json:"learner_response" yaml:"learner_response"`
	CorrectAnswer   string   `json:"correct_answer" yaml:"correct_answer"`

	// WasCorrect is nil until the learner answers.
	WasCorrect *bool `json:"was_correct,omitempty" yaml:"was_correct,omitempty"`

	ObjectiveID string `json:"objective_id" yaml:"objective_id"`
}

// Answer records a learner response and its correctness by exact comparison.
func (i *Interaction) Answer(response string) {
	correct := response == i.CorrectAnswer
	i.LearnerResponse = response
	i.WasCorrect = &correct
}

// Clone returns a deep copy.
func (i Interaction) Clone() Interaction {
	c := i
	if i.Options != nil {
		c.Options = append([]string(nil), i.Options...)
	}
	if i.WasCorrect != nil {
		v := *i.WasCorrect
		c.WasCorrect = &v
	}
	return c
}

// DefaultInteractions returns the seeded two-question set.
func DefaultInteractions() []Interaction {
	return []Interaction{
		{
			ID:            "q1",
			QuestionRef:   "Which colour is the sky on a clear day?",
			QuestionType:  "choice",
			Options:       []string{"Red", "Blue", "Green"},
			CorrectAnswer: "Blue",
			ObjectiveID:   "obj-colours",
		},
		{
			ID:            "q2",
			QuestionRef:   "Which fruit is yellow?",
			QuestionType:  "choice",
			Options:       []string{"Apple", "Banana", "Cherry"},
			CorrectAnswer: "Banana",
			ObjectiveID:   "obj-fruit",
		},
	}
}
