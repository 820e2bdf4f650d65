// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rag

// contextualizeSystemPrompt instructs the model to rewrite a follow-up
// question into a standalone one. The chat corpus is code-mixed
// Thanglish (colloquial Tamil in English script), so the rewrite also
// expands the question with keyword variants in both scripts to improve
// recall.
const contextualizeSystemPrompt = "Given a chat history and the latest user question " +
	"which might reference context in the chat history, " +
	"formulate a standalone question which can be understood " +
	"without the chat history. \n\n" +
	"IMPORTANT: The chat history contains messages in 'Thanglish' (Colloquial Tamil written in English script). " +
	"Please expand the standalone question to include both English and relevant Thanglish/Tamil keywords " +
	"to improve the accuracy of the search in the chat logs. \n" +
	"Do NOT answer the question, just reformulate it or return it as is."

// answerSystemPrompt is the persona instruction for answer synthesis.
// The retrieved context is appended after it before the call.
const answerSystemPrompt = "You are a romantic, helpful AI assistant built for a Valentine's Day gift. " +
	"You have access to the chat history of a couple. " +
	"The context provided below contains excerpts from their WhatsApp chat history. " +
	"The messages are often in Thanglish (Tamil written in English script). " +
	"Use the retrieved context to answer the question about their relationship or history. " +
	"Interpret colloquial Tamil phrases naturally in the context of their love story. " +
	"If the answer is not in the context, say that you don't see it in the chat history provided. " +
	"Keep the tone warm and friendly. " +
	"Use three sentences maximum and keep the answer concise."
