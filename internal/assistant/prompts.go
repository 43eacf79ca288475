package assistant

import "fmt"

// groundedAnswerPrompt embeds the assembled context and the user question,
// instructing the model to answer only from the supplied documents.
func groundedAnswerPrompt(contextStr, question string) string {
	return fmt.Sprintf(`You are a knowledge base assistant. Answer the user's question using ONLY the documents below. If the documents do not contain the answer, say so plainly instead of guessing. Refer to documents by their names when relevant.

Documents:
%s

Question: %s`, contextStr, question)
}

// attributionPrompt asks the model which of the context documents were
// primary sources for an already-generated answer.
func attributionPrompt(question, contextStr, answer string) string {
	return fmt.Sprintf(`You are given a user question, a set of documents, and the answer that was generated from those documents.

Question: %s

Documents:
%s

Answer: %s

Return a JSON array containing the names of the documents that were primary sources for the answer, exactly as they appear in the "Document name" fields above. Return an empty array [] if no document was a primary source. Return ONLY the JSON array, no other text.`, question, contextStr, answer)
}

// summaryPrompt asks for a short prose summary of a single document.
func summaryPrompt(name, content string) string {
	return fmt.Sprintf(`Summarize the following document in 2-4 sentences of plain prose. Do not use bullet points or headings.

Document name: %s

%s`, name, content)
}

// faqPrompt asks for question/answer pairs derived from a document.
func faqPrompt(name, content string) string {
	return fmt.Sprintf(`Generate up to 5 frequently asked questions with concise answers, based only on the document below. Return a JSON array of objects with "question" and "answer" string fields. Return ONLY the JSON array.

Document name: %s

%s`, name, content)
}

// tagsPrompt asks for suggested tags for a document.
func tagsPrompt(name, content string) string {
	return fmt.Sprintf(`Suggest up to 5 short lowercase tags that categorize the document below. Return a JSON array of strings. Return ONLY the JSON array.

Document name: %s

%s`, name, content)
}
