package openai

import (
	"fmt"
	"strings"

	"github.com/poiesic/toolshelf/ai"
)

const intentResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "keywords": {
      "type": "array",
      "items": {"type": "string", "minLength": 1}
    },
    "category": {
      "type": ["string", "null"],
      "enum": [%s, null]
    },
    "minRating": {
      "type": ["integer", "null"],
      "minimum": 1,
      "maximum": 5
    },
    "dateRange": {
      "type": ["string", "null"],
      "enum": [%s, null]
    }
  },
  "required": ["keywords"],
  "additionalProperties": false
}`

const intentPromptTemplate = `You convert search requests for a personal catalog of AI tools into a JSON search intent.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- keywords: the words a tool name or description would contain. Keep the user's language and spelling. Leave out filler words and words already captured by another field.
- category: the kind of output the user wants. Must be one of: %s. Use null when the request does not say.
- minRating: the lowest acceptable rating from 1 to 5 when the user asks for well-rated or highly rated tools. Use null otherwise.
- dateRange: how recently the tool was used. Must be one of: %s. Use null when the request does not mention time.
- Do not invent constraints the user did not express.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input: "image generators I used last month rated 4 or higher"
Output:
{"keywords":["generator"],"category":"image","minRating":4,"dateRange":"last_month"}

Example:
Input: "画像を作れるツール"
Output:
{"keywords":["画像"],"category":"image","minRating":null,"dateRange":null}

Example:
Input: "chatgpt"
Output:
{"keywords":["chatgpt"],"category":null,"minRating":null,"dateRange":null}

Example:
Input: "what did I use recently for coding"
Output:
{"keywords":[],"category":"code","minRating":null,"dateRange":"recent"}`

// buildSystemPrompt creates the system prompt with the category and date bucket vocabularies embedded.
func buildSystemPrompt() string {
	categories := ai.CategoryNames()
	buckets := ai.DateBucketNames()
	schema := fmt.Sprintf(intentResponseSchema, quoteJoin(categories), quoteJoin(buckets))
	return fmt.Sprintf(intentPromptTemplate,
		schema,
		strings.Join(categories, ", "),
		strings.Join(buckets, ", "))
}

func quoteJoin(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = `"` + v + `"`
	}
	return strings.Join(quoted, ", ")
}
