package campaigns

import "fmt"

// Prompt templates are fixed; the topic is the only variable input.

const campaignPromptTemplate = `
Create an awareness campaign about %s. The campaign should include:
1. A catchy title
2. A brief introduction about why this topic is important
3. Key facts and statistics
4. How people can help or take action
5. A powerful closing statement

Make it persuasive, informative, and inspiring.
`

const imagePromptTemplate = `
Create a prompt for an AI image generator to create an awareness campaign poster about %s.
The prompt should describe a powerful, visually appealing image that represents the cause.
Keep it under 100 words and focus on visual elements.
`

// campaignPrompt builds the campaign text prompt for a topic
func campaignPrompt(topic string) string {
	return fmt.Sprintf(campaignPromptTemplate, topic)
}

// imagePrompt builds the image-generator prompt for a topic
func imagePrompt(topic string) string {
	return fmt.Sprintf(imagePromptTemplate, topic)
}
