// Package mcphost connects a conversational model session to external tool
// servers speaking the Model Context Protocol over stdio.
//
// A client launches every server declared in a JSON configuration file,
// aggregates their advertised tools into a single set, and offers that set
// to the model with each query. When the model requests tool calls, the
// client routes each call to the server that registered the tool, feeds the
// results back, and returns the model's final answer.
//
// # Basic Usage
//
//	client := mcphost.NewClient(
//	    mcphost.WithConfigPath("servers.json"),
//	    mcphost.WithLogger(slog.Default()),
//	)
//	defer client.Cleanup()
//
//	if err := client.ConnectToServers(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := client.ProcessQuery(ctx, "What's the weather in Sacramento?")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Output())
//
// Or let WithClient manage the lifecycle:
//
//	err := mcphost.WithClient(ctx, func(c mcphost.Client) error {
//	    return c.ChatLoop(ctx)
//	},
//	    mcphost.WithConfigPath("servers.json"),
//	)
//
// # Configuration
//
// The configuration file maps server names to launch descriptors:
//
//	{
//	  "mcpServers": {
//	    "weather": {"command": "weather-server", "args": ["--fahrenheit"]},
//	    "files":   {"command": "file-server"}
//	  }
//	}
//
// Servers connect in declaration order, and when two servers advertise the
// same tool name the earlier declaration wins.
//
// # Error Handling
//
// Failures carry typed errors:
//
//	result, err := client.ProcessQuery(ctx, prompt)
//	if err != nil {
//	    var notFound *mcphost.ToolNotFoundError
//	    if errors.As(err, &notFound) {
//	        log.Fatalf("model requested unknown tool %s", notFound.ToolName)
//	    }
//	    log.Fatal(err)
//	}
//
// # Requirements
//
// Model access uses the Anthropic Messages API; set ANTHROPIC_API_KEY or
// pass WithAPIKey. Each configured server command must be installed and
// resolvable in PATH.
package mcphost
