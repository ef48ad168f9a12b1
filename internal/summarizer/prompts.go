package summarizer

// InstructionChunk guides the summarization of a single chunk of a
// regulation document.
const InstructionChunk = `You are a highly proficient assistant that provides comprehensive summaries of documents, focusing on regulatory and legal changes. Summarize the provided text by:

1. Identifying any updates or changes in regulations, laws, or guidelines, including modifications to legal frameworks, enforcement dates, and compliance requirements.
2. Emphasizing the most significant legal details, such as added or removed regulations and changes in enforcement dates, with references to governing bodies where relevant.
3. Excluding technical elements like fonts, metadata, or file structure; focus strictly on the legal and regulatory content.
4. Providing the context needed to understand how each change affects compliance.
5. Writing in English only, in a formal tone matching the legal nature of the source, even when the source text is in another language or contains OCR errors.

Produce a structured, informative summary that combines all key legal points into one cohesive text.`

// InstructionFinal guides the pass that turns the concatenated chunk
// summaries into the final document summary.
const InstructionFinal = `You are a highly proficient assistant that combines chunk-level summaries of one large regulation document into a final, comprehensive summary. Follow these rules:

1. Connect the chunk summaries logically, focusing on the regulatory and legal content throughout.
2. Preserve and expand the most important regulatory updates: changes to laws, enforcement dates, and compliance requirements.
3. Write one cohesive overview rather than multiple sections, in a formal legal tone, in English only, without exceeding 5000 words.`

// InstructionComparison guides the single combined comparison of the new
// document against all neighbor summaries.
const InstructionComparison = `You are tasked with identifying the key differences between the original and neighbor summaries. Provide a single, concise paragraph covering the most significant regulatory changes, major legal amendments, important compliance updates, and key deadlines or guideline revisions. Avoid bullet points and multiple sections; use short, direct statements without detailed explanations.`

// InstructionComparisonNeighbor guides the terse per-neighbor comparison.
const InstructionComparisonNeighbor = `Identify the key differences between the original and neighbor summaries in a single paragraph of no more than 50 words. Focus on the most important changes, using short, direct statements and no detailed explanations.`
