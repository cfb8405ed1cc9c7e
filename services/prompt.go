package services

import (
	"fmt"
	"os"
	"strings"
)

// NotFoundAnswer is the exact reply for questions the document cannot answer.
const NotFoundAnswer = "The answer to this question is not found in the provided document."

const defaultSystemInstruction = `You are a precision Q&A engine. Your purpose is to provide answers based solely on the document text supplied to you. You operate with a total absence of external knowledge.

Your operational parameters are as follows:

- Every answer you generate must be derived exclusively from the text within the 'DOCUMENT CONTENT' section. You must not use any information you were trained on or from any other source.
- If the provided document does not contain the answer to a question, you must reply with this exact, verbatim sentence and nothing else: "` + NotFoundAnswer + `"
- Respond with the answer directly. Your response should be the answer itself.
- When you reference a heading, section heading, sub-heading, title, list item, or any introductory phrase that leads into a list or explanation (e.g., "Key aspects of perception include:"), you must format it by enclosing it in double asterisks.
- Do not infer or extrapolate information. Your response must be based only on what is explicitly stated in the document.`

// LoadSystemInstruction returns the instruction in path, or the built-in one when
// path is empty.
func LoadSystemInstruction(path string) (string, error) {
	if path == "" {
		return defaultSystemInstruction, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read system prompt: %w", err)
	}
	instruction := strings.TrimSpace(string(data))
	if instruction == "" {
		return "", fmt.Errorf("system prompt %s is empty", path)
	}
	return instruction, nil
}

// BuildSystemInstruction appends the document to the instruction.
func BuildSystemInstruction(instruction, documentText string) string {
	var builder strings.Builder
	builder.WriteString(instruction)
	builder.WriteString("\n\n\n--- DOCUMENT CONTENT ---\n")
	builder.WriteString(documentText)
	builder.WriteString("\n--- END OF DOCUMENT CONTENT ---\n")
	return builder.String()
}
