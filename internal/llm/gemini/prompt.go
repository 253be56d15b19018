package gemini

// analysisPrompt is the fixed instruction sent alongside the document
// bytes. The response contract (exact JSON keys) is what the insight
// decoder expects.
const analysisPrompt = `Analyze this PDF document (likely a resume or CV) and provide a structured summary with the following information:

1. A concise summary of the candidate's background and experience
2. Key skills mentioned in the document
3. Experience level (e.g., "2+ years", "Senior level", "Entry level")
4. Education background
5. Key highlights or achievements

Please format your response as a JSON object with these exact keys:
- summary: string
- key_skills: array of strings
- experience_level: string
- education: string
- highlights: array of strings

Focus on extracting the most relevant information for recruiters and hiring managers.`
