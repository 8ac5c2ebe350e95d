package gemini

import (
	"fmt"

	"google.golang.org/genai"
)

const (
	descriptionTemperature float32 = 0.7
	descriptionTopP        float32 = 0.95
)

func descriptionPrompt(name, category string) string {
	return fmt.Sprintf("Create a compelling, professional e-commerce product description for a %s in the %s category. "+
		"Focus on benefits and quality. Keep it under 100 words.", name, category)
}

func assistantPrompt(query, catalogSummary string) string {
	return fmt.Sprintf("You are a helpful shopping assistant for NovaMart.\n"+
		"Available Products: %s\n"+
		"User Query: %s\n"+
		"Provide a helpful, friendly recommendation based on the user's query and the available products.",
		catalogSummary, query)
}

func descriptionSampling() *genai.GenerateContentConfig {
	temp, topP := descriptionTemperature, descriptionTopP
	return &genai.GenerateContentConfig{
		Temperature: &temp,
		TopP:        &topP,
	}
}
