package usecase

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/pkg/model"
)

// QuestionType describes how an answer is parsed
type QuestionType string

const (
	QuestionTypeChoice    QuestionType = "choice"
	QuestionTypeScale     QuestionType = "scale"
	QuestionTypeNumeric   QuestionType = "numeric"
	QuestionTypeOpenEnded QuestionType = "open_ended"
)

// Question is one prompt of the mood check-in
type Question struct {
	ID       string
	Text     string
	Type     QuestionType
	Choices  []string
	Required bool
}

// Question ids of the check-in flow
const (
	QuestionMood   = "mood"
	QuestionEnergy = "energy"
	QuestionStress = "stress"
	QuestionSleep  = "sleep"
	QuestionNotes  = "notes"
	QuestionTags   = "tags"
)

// CheckInFlow walks through the mood check-in prompts and collects answers.
// It is not safe for concurrent use.
type CheckInFlow struct {
	questions []Question
	answers   map[string]string
	current   int
}

// NewCheckInFlow creates the daily check-in question set
func NewCheckInFlow() *CheckInFlow {
	questions := []Question{
		{
			ID:       QuestionMood,
			Text:     "How are you feeling today?",
			Type:     QuestionTypeChoice,
			Choices:  []string{string(model.MoodGreat), string(model.MoodGood), string(model.MoodOkay), string(model.MoodLow), string(model.MoodBad)},
			Required: true,
		},
		{
			ID:       QuestionEnergy,
			Text:     "How is your energy level, from 1 to 5?",
			Type:     QuestionTypeScale,
			Required: true,
		},
		{
			ID:       QuestionStress,
			Text:     "How stressed do you feel, from 1 to 5?",
			Type:     QuestionTypeScale,
			Required: true,
		},
		{
			ID:       QuestionSleep,
			Text:     "How many hours did you sleep last night?",
			Type:     QuestionTypeNumeric,
			Required: true,
		},
		{
			ID:       QuestionNotes,
			Text:     "Anything else you want to note?",
			Type:     QuestionTypeOpenEnded,
			Required: false,
		},
		{
			ID:       QuestionTags,
			Text:     "Add tags (comma separated), e.g. work, exercise",
			Type:     QuestionTypeOpenEnded,
			Required: false,
		},
	}

	return &CheckInFlow{
		questions: questions,
		answers:   make(map[string]string),
	}
}

// NextQuestion returns the next unasked question, nil when the flow is complete
func (f *CheckInFlow) NextQuestion() *Question {
	if f.current >= len(f.questions) {
		return nil
	}

	q := &f.questions[f.current]
	f.current++
	return q
}

// QuestionByID returns a question by its id
func (f *CheckInFlow) QuestionByID(id string) *Question {
	for i := range f.questions {
		if f.questions[i].ID == id {
			return &f.questions[i]
		}
	}
	return nil
}

// IsComplete reports whether every question has been asked
func (f *CheckInFlow) IsComplete() bool {
	return f.current >= len(f.questions)
}

// TotalQuestions returns the number of questions
func (f *CheckInFlow) TotalQuestions() int {
	return len(f.questions)
}

// Reset starts over and drops all answers
func (f *CheckInFlow) Reset() {
	f.current = 0
	f.answers = make(map[string]string)
}

// Answer validates and records the response to a question
func (f *CheckInFlow) Answer(questionID, response string) error {
	q := f.QuestionByID(questionID)
	if q == nil {
		return fmt.Errorf("question not found: %s", questionID)
	}

	response = strings.TrimSpace(response)
	if response == "" {
		if q.Required {
			return invalid(questionID, "response is required for question: %s", questionID)
		}
		f.answers[questionID] = ""
		return nil
	}

	switch q.Type {
	case QuestionTypeChoice:
		response = strings.ToLower(response)
		valid := false
		for _, c := range q.Choices {
			if c == response {
				valid = true
				break
			}
		}
		if !valid {
			return invalid(questionID, "invalid answer: must be one of %s", strings.Join(q.Choices, ", "))
		}
	case QuestionTypeScale:
		n, err := strconv.Atoi(response)
		if err != nil {
			return invalid(questionID, "invalid answer: must be a whole number")
		}
		if err := checkIntRange(questionID, questionID+" level", n, MinMoodScale, MaxMoodScale); err != nil {
			return err
		}
	case QuestionTypeNumeric:
		v, err := strconv.ParseFloat(response, 64)
		if err != nil {
			return invalid(questionID, "invalid answer: must be a number")
		}
		if err := checkRange(questionID, "sleep hours", v, 0, MaxSleepHours); err != nil {
			return err
		}
	}

	f.answers[questionID] = response
	return nil
}

// CheckIn builds the check-in from the recorded answers
func (f *CheckInFlow) CheckIn(userID int64) (*model.MoodCheckIn, error) {
	for _, q := range f.questions {
		if _, ok := f.answers[q.ID]; q.Required && !ok {
			return nil, invalid(q.ID, "response is required for question: %s", q.ID)
		}
	}

	energy, _ := strconv.Atoi(f.answers[QuestionEnergy])
	stress, _ := strconv.Atoi(f.answers[QuestionStress])
	sleep, _ := strconv.ParseFloat(f.answers[QuestionSleep], 64)

	var tags []string
	for _, t := range strings.Split(f.answers[QuestionTags], ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, strings.ToLower(t))
		}
	}

	return &model.MoodCheckIn{
		UserID:      userID,
		Mood:        model.Mood(f.answers[QuestionMood]),
		EnergyLevel: energy,
		StressLevel: stress,
		SleepHours:  sleep,
		Notes:       f.answers[QuestionNotes],
		Tags:        tags,
	}, nil
}
