package insight

const systemPrompt = "You extract insights from long texts. Return short, crisp outputs."

const freeformInstructions = "Provide: 1) a 1-2 sentence summary; 2) three short topics as a JSON array only.\n"

const structuredInstructions = "Provide a 1-2 sentence summary and exactly three short topics.\n"

func userPrompt(instructions, text string) string {
	return instructions + "Text to analyze:\n\n" + text
}
