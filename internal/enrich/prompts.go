package enrich

import (
	"fmt"
	"strings"
)

const academicPrompt = `
You are an expert Academic Linguist specializing in YÖKDİL, YDS, and TOEFL preparation.
Your task is to provide strict, high-level vocabulary data for the word: %q.

OUTPUT RULES:
1. Return strictly valid JSON. No Markdown formatting.
2. Target Level: B2/C1 (Graduate Student Level).
3. In 'academicSentences' wrap the target word and its morphological variations in Markdown bold.
   Example: "The **analysis** indicated significant results."

JSON STRUCTURE:
{
  "word": %q,
  "type": "Part of speech (e.g., Noun, Verb). Choose the most academic form.",
  "engDefinition": "A precise, C1-level academic definition. Concise (Max 15 words).",
  "turkish": "The most appropriate contextual academic Turkish meaning.",
  "synonyms": "3 distinct, high-level academic synonyms (comma-separated).",
  "academicSentences": [
    "Sentence 1: Natural Sciences/Engineering context. (Max 25 words)",
    "Sentence 2: Social Sciences/Methodology context. (Max 25 words)",
    "Sentence 3: General Academic context. (Max 25 words)"
  ]
}
`

const storyPrompt = `
You are an academic writing tutor.
Task: Weave the following words into a coherent, high-quality academic paragraph: [%s].

RULES:
1. Do NOT just list sentences. Create a logical flow (e.g., Context -> Problem -> Solution).
2. The tone must be scientific or research-oriented.
3. Wrap the target words in Markdown bold wherever they appear in the story. Example: "The **evidence** suggested..."
4. Provide a professional Turkish translation.

OUTPUT JSON:
{
  "englishStory": "The coherent academic paragraph...",
  "turkishTranslation": "The Turkish translation...",
  "usedWords": ["List of words successfully included"]
}
`

func academicDataPrompt(word string) string {
	return fmt.Sprintf(academicPrompt, word, word)
}

func contextStoryPrompt(words []string) string {
	return fmt.Sprintf(storyPrompt, strings.Join(words, ", "))
}
