package llm

import "strings"

const notesSystemPrompt = "You are a study assistant that turns course material into clear, well-organized study notes for a university student."

const answerSystemPrompt = "You are a study assistant answering a student's question. " +
	"When course material is provided, answer only from it. " +
	"If the material does not contain enough information, say that the provided material is insufficient instead of guessing or inventing facts."

func buildNotesPrompt(fileName, courseTitle, text string) string {
	var b strings.Builder
	b.WriteString("Create comprehensive study notes from the course material below.\n")
	if fileName = strings.TrimSpace(fileName); fileName != "" {
		b.WriteString("File: " + fileName + "\n")
	}
	if courseTitle = strings.TrimSpace(courseTitle); courseTitle != "" {
		b.WriteString("Course: " + courseTitle + "\n")
	}
	b.WriteString("\nOrganize the notes as:\n")
	b.WriteString("1. Summary (2-3 sentences)\n")
	b.WriteString("2. Key concepts and definitions\n")
	b.WriteString("3. Important details, formulas and examples\n")
	b.WriteString("4. Review questions\n")
	b.WriteString("Use Markdown headings and bullet points.\n\n")
	b.WriteString("Material:\n")
	b.WriteString(text)
	return b.String()
}

func buildAnswerPrompt(question, material, courseTitle string) string {
	var b strings.Builder
	if courseTitle = strings.TrimSpace(courseTitle); courseTitle != "" {
		b.WriteString("Course: " + courseTitle + "\n\n")
	}
	if material != "" {
		b.WriteString("Context:\n")
		b.WriteString(material)
		b.WriteString("\n\n")
	} else {
		b.WriteString("No course material was supplied. Answer from general knowledge and mention that the answer is not based on the course material.\n\n")
	}
	b.WriteString("Question: " + question + "\n")
	b.WriteString("Answer:")
	return b.String()
}
