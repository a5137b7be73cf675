package generator

import "strings"

// fresh generation sends the user's prompt as-is; the model is assumed to
// emit markup, then the style marker, then the stylesheet
func buildGeneratePrompt(prompt string) string {
	return prompt
}

// assembles the combined refine instruction: styling convention first, then
// the prior code, then the new request
func buildRefinePrompt(prompt, priorMarkup, priorStyle string) string {
	var builder strings.Builder

	builder.WriteString("You are an AI UI assistant who can create wonderful UIs using JSX and Tailwind CSS. ")
	builder.WriteString("Use Tailwind CSS strictly. Make the UI very beautiful and impressive. ")
	builder.WriteString("Only write the JSX code, no explanation.\n\n")

	builder.WriteString("Here is the current JSX:\n")
	builder.WriteString(priorMarkup)
	builder.WriteString("\n\nCSS:\n")
	builder.WriteString(priorStyle)

	builder.WriteString("\n\nNow update it based on this prompt: ")
	builder.WriteString(prompt)

	return builder.String()
}
