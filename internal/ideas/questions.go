package ideas

import "fmt"

// a form field the client should render for the current step
type Question struct {
	Field string `json:"field"`
	Label string `json:"label"`
}

// returns the questions asked at the state's step, nil once the result is shown
func Questions(state State) []Question {
	switch state.Step {
	case StepCollectingTopic:
		return []Question{
			{Field: "topic", Label: "Enter the industry you're interested in or a broad topic:"},
		}
	case StepCollectingDetails:
		return []Question{
			{Field: "problem", Label: fmt.Sprintf("What problem do you want to solve in the field of '%s'?", state.Topic)},
			{Field: "impact", Label: "What impact do you want to create?"},
			{Field: "skills", Label: "What skills do you need to learn?"},
			{Field: "platform", Label: "What platforms/tools do you think you'll need?"},
		}
	default:
		return nil
	}
}
