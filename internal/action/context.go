package action

import "fmt"

// productContext is the canned knowledge the query handler injects ahead of
// every question. There is no retrieval step; this is the whole corpus.
const productContext = `
VAEBZ is a technology company specializing in AI infrastructure and automation solutions.
Key products include:
- TaskHarbinger: An AI orchestration platform for workflow automation
- LightRAG: A retrieval-augmented generation system for knowledge integration
- MCP Services: AI service integrations using Marvin Control Protocol
- SentinelGaze: Web UI for system monitoring and management
- AtomicScope: A real-time code analysis and visualization tool for developers
- ProposalForge: An automated proposal generation and management system

TaskHarbinger features include orchestration of AI tasks, integration with various AI services,
support for LightRAG, Git MCP server, containerized architecture with Docker, Traefik for API routing,
DynamoDB for persistence, Redis for caching, and UI for monitoring.

AtomicScope provides real-time code structure visualization, dependency analysis, impact assessment of
code changes, integration with version control systems, performance bottleneck identification, and
automated refactoring suggestions. It helps development teams understand complex codebases more easily.

ProposalForge is VAEBZ's AI-powered proposal system that automates the creation, management, and tracking
of business proposals. It features customizable templates, content generation based on client requirements,
pricing optimization algorithms, approval workflows, digital signature integration, analytics dashboards,
and seamless integration with CRM systems. The system reduces proposal creation time by up to 70% while
improving win rates through personalized content and data-driven insights.

MCP (Marvin Control Protocol) allows standardized communication between AI services with support for
multiple transport methods, service discovery, integration with AI tools, authentication, and action frameworks.

The system uses a microservice architecture with Docker containers, API routing through Traefik,
and various specialized components for AI processing.
`

// buildPrompt wraps the user's question with the product context and the
// grounding instructions sent to the generation backend.
func buildPrompt(query string) string {
	return fmt.Sprintf(`Based on the following context about VAEBZ and its products, please answer this question:

CONTEXT:
%s

QUESTION:
%s

If the question cannot be answered based on the context, please only use information that would be factual about
VAEBZ as a technology company focused on AI infrastructure and automation. Do not invent specific details about
people, events, or statistics that aren't in the context.`, productContext, query)
}
