package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	endpoint := flag.String("endpoint", "http://localhost:8080/mcp/stream", "MCP streamable HTTP endpoint")
	query := flag.String("query", "Solingen", "elastic_search query")
	flag.Parse()

	ctx := context.Background()

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "osca-jobs-test-client",
		Version: "0.1.0",
	}, nil)

	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{
		Endpoint: *endpoint,
	}, nil)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer func() { _ = session.Close() }()

	log.Printf("Connected to server (session ID: %s)\n", session.ID())

	testListTools(ctx, session)
	testJobPostings(ctx, session)
	testElasticSearch(ctx, session, *query)
	testElasticSearch(ctx, session, "")

	fmt.Println("\nAll tests completed")
}

func testListTools(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: list tools")

	res, err := session.ListTools(ctx, nil)
	if err != nil {
		log.Printf("list tools failed: %v", err)
		return
	}
	for _, tool := range res.Tools {
		fmt.Printf("- %s: %s\n", tool.Name, tool.Description)
	}
}

func testJobPostings(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: job_postings")

	params := &mcp.CallToolParams{
		Name: "job_postings",
		Arguments: map[string]any{
			"limit": 5,
		},
	}

	result, err := session.CallTool(ctx, params)
	if err != nil {
		log.Printf("job_postings failed: %v", err)
		return
	}

	printResult(result)
	if result.IsError {
		fmt.Println("job_postings returned a tool error")
		return
	}
	fmt.Println("job_postings passed")
}

func testElasticSearch(ctx context.Context, session *mcp.ClientSession, query string) {
	fmt.Printf("\nTEST: elastic_search query=%q\n", query)

	params := &mcp.CallToolParams{
		Name: "elastic_search",
		Arguments: map[string]any{
			"query": query,
		},
	}

	result, err := session.CallTool(ctx, params)
	if err != nil {
		log.Printf("elastic_search failed: %v", err)
		return
	}

	printResult(result)
	if result.IsError {
		fmt.Println("elastic_search returned a tool error")
		return
	}
	fmt.Println("elastic_search passed")
}

func printResult(res *mcp.CallToolResult) {
	for _, c := range res.Content {
		if txt, ok := c.(*mcp.TextContent); ok {
			fmt.Println(txt.Text)
		}
	}
}
