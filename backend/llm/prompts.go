package llm

import "fmt"

const summaryResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "summary": {
      "type": "string"
    },
    "key_points": {
      "type": "array",
      "items": {
        "type": "string"
      }
    }
  },
  "required": ["summary", "key_points"],
  "additionalProperties": false
}`

const summaryPromptTemplate = `Summarize the given web page content and return the result as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- The summary must be at most %d characters long and must end on a sentence boundary.
- Write the summary in plain prose. Do not use markdown, bullet characters, or headings.
- key_points holds at most %d short phrases, each capturing one distinct fact from the content.
- Use only information present in the content. Do not hallucinate.
- If the content is too short to summarize, return it verbatim as the summary with "key_points": [].
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input: "The Eiffel Tower opened in 1889. It is 330 metres tall and the most visited paid monument in the world."
Output:
{
  "summary": "The Eiffel Tower, opened in 1889, stands 330 metres tall and is the most visited paid monument in the world.",
  "key_points": ["opened in 1889", "330 metres tall", "most visited paid monument"]
}`

// buildSystemPrompt creates the system prompt with the length budget and
// key point cap embedded.
func buildSystemPrompt(maxLength, maxKeyPoints int) string {
	return fmt.Sprintf(summaryPromptTemplate,
		summaryResponseSchema,
		maxLength,
		maxKeyPoints)
}
