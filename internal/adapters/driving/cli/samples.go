package cli

import "github.com/custodia-labs/semsearch-cli/internal/core/ports/driving"

// sampleDocuments is the built-in demo corpus loaded by the load command.
var sampleDocuments = []driving.AddDocumentInput{
	{
		Title: "Introduction to Artificial Intelligence",
		Content: `Artificial Intelligence (AI) is a branch of computer science that seeks to build
systems capable of performing tasks that normally require human intelligence.
This includes learning, reasoning, perception, and natural language understanding.
Machine learning algorithms are fundamental to the development of modern AI systems.`,
		FileType: "text",
	},
	{
		Title: "Natural Language Processing",
		Content: `Natural Language Processing (NLP) is a subfield of AI focused on the interaction
between computers and human language. It covers tasks such as sentiment analysis,
machine translation, text generation and semantic search. Transformer models
have revolutionised the NLP field in recent years.`,
		FileType: "text",
	},
	{
		Title: "Machine Learning and Deep Learning",
		Content: `Machine Learning is a data analysis method that automates the construction of
analytical models. Deep Learning, a subset of machine learning, uses neural networks
with multiple layers to model and understand complex data. These techniques are
especially useful for pattern recognition, computer vision and natural language processing.`,
		FileType: "text",
	},
	{
		Title: "Recommendation Systems",
		Content: `Recommendation systems are algorithms that suggest relevant items to users,
such as products, films, or content. They use techniques like collaborative filtering,
content-based filtering, and hybrid methods. These systems are fundamental on platforms
like Netflix, Amazon, and Spotify for personalising the user experience.`,
		FileType: "text",
	},
	{
		Title: "Databases and Big Data",
		Content: `Relational databases have been the standard for storing structured information
for decades. However, with the growth of Big Data, new technologies have emerged such as
NoSQL databases, distributed systems, and real-time processing tools.
These technologies handle massive data volumes with high velocity and variety.`,
		FileType: "text",
	},
}

// sampleQueries drive the demo command.
var sampleQueries = []string{
	"What is artificial intelligence?",
	"machine learning and neural networks",
	"recommendation systems Netflix",
	"NoSQL databases",
	"natural language processing transformers",
}
