package intent

import "strings"

const promptTemplate = `
You are a JSON API. Analyze this text: "{{query}}".
Possible intents: "find_movie_by_dialogue", "get_top_by_genre", "find_similar_movies".
Possible mediaTypes: "movie", "tv"

Rules:
- If it's a quote or dialogue, set intent to "find_movie_by_dialogue" and extract "movieTitle" and set mediaType.
- If it's a request for top movies or series of a genre, set intent to "get_top_by_genre", extract "genre" (English), and set mediaType.
- If it's about similar movies or series, set intent to "find_similar_movies", extract "movieTitle" and mediaType.

Respond ONLY with valid minified JSON object without any explanation.

Examples:
User: "I'll be back"
{"intent":"find_movie_by_dialogue","movieTitle":"The Terminator","mediaType":"movie"}

User: "بهترین سریال های درام"
{"intent":"get_top_by_genre","genre":"Drama","mediaType":"tv"}

User: "سریال شبیه Breaking Bad"
{"intent":"find_similar_movies","movieTitle":"Breaking Bad","mediaType":"tv"}

Now analyze: "{{query}}"
`

// BuildPrompt embeds query into the classification instructions.
func BuildPrompt(query string) string {
	return strings.ReplaceAll(promptTemplate, "{{query}}", query)
}
