package snippets

import (
	"fmt"
	"strings"
)

// DefaultRegistry returns a registry populated with the built-in targets.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, t := range DefaultTargets() {
		// Built-in targets always validate; Register only fails on
		// duplicates, which cannot happen here.
		_ = r.Register(t)
	}
	return r
}

// DefaultTargets returns the built-in snippet targets.
func DefaultTargets() []*Target {
	return []*Target{
		{
			ID:          TargetCurl,
			Name:        "cURL",
			DisplayName: "cURL",
			Syntax:      "bash",
			Enabled:     true,
			Description: "Command-line HTTP client",
			Render:      renderCurl,
		},
		{
			ID:          TargetJavaScript,
			Name:        "JavaScript",
			DisplayName: "JavaScript (fetch)",
			Syntax:      "javascript",
			Enabled:     true,
			Description: "Browser / Node fetch API",
			Render:      renderJavaScript,
		},
		{
			ID:          TargetPython,
			Name:        "Python",
			DisplayName: "Python (requests)",
			Syntax:      "python",
			Enabled:     true,
			Description: "Python requests library",
			Render:      renderPython,
		},
		{
			ID:          TargetPHP,
			Name:        "PHP",
			DisplayName: "PHP (cURL)",
			Syntax:      "php",
			Enabled:     true,
			Description: "PHP cURL extension",
			Render:      renderPHP,
		},
		{
			ID:          TargetRuby,
			Name:        "Ruby",
			DisplayName: "Ruby (Net::HTTP)",
			Syntax:      "ruby",
			Enabled:     true,
			Description: "Ruby standard library HTTP client",
			Render:      renderRuby,
		},
		{
			ID:          TargetGo,
			Name:        "Go",
			DisplayName: "Go (net/http)",
			Syntax:      "go",
			Enabled:     true,
			Description: "Go standard library HTTP client",
			Render:      renderGo,
		},
	}
}

func renderCurl(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "curl -X %s \\\n", req.Method)
	for _, h := range req.Headers {
		fmt.Fprintf(&b, "  -H '%s: %s' \\\n", h.Name, h.Value)
	}
	if req.HasBody() {
		fmt.Fprintf(&b, "  -d '%s' \\\n", req.Body)
	}
	b.WriteString("  " + req.URL)
	return b.String()
}

func renderJavaScript(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "const response = await fetch('%s', {\n", req.URL)
	fmt.Fprintf(&b, "  method: '%s',\n", req.Method)
	b.WriteString("  headers: {\n")
	for i, h := range req.Headers {
		sep := ","
		if i == len(req.Headers)-1 {
			sep = ""
		}
		fmt.Fprintf(&b, "    '%s': '%s'%s\n", h.Name, h.Value, sep)
	}
	b.WriteString("  }")
	if req.HasBody() {
		fmt.Fprintf(&b, ",\n  body: JSON.stringify(%s)", req.Body)
	}
	b.WriteString("\n});\nconst data = await response.json();")
	return b.String()
}

func renderPython(req Request) string {
	var b strings.Builder
	b.WriteString("import requests\n\n")
	b.WriteString("headers = {\n")
	for i, h := range req.Headers {
		sep := ","
		if i == len(req.Headers)-1 {
			sep = ""
		}
		fmt.Fprintf(&b, "    '%s': '%s'%s\n", h.Name, h.Value, sep)
	}
	b.WriteString("}\n")
	if req.HasBody() {
		fmt.Fprintf(&b, "\npayload = %s\n", req.Body)
	}
	fmt.Fprintf(&b, "\nresponse = requests.%s(\n", strings.ToLower(req.Method))
	fmt.Fprintf(&b, "    '%s',\n", req.URL)
	b.WriteString("    headers=headers")
	if req.HasBody() {
		b.WriteString(",\n    json=payload")
	}
	b.WriteString("\n)\n\nprint(response.json())")
	return b.String()
}

func renderPHP(req Request) string {
	var b strings.Builder
	b.WriteString("<?php\n\n$curl = curl_init();\n\n")
	b.WriteString("curl_setopt_array($curl, array(\n")
	fmt.Fprintf(&b, "  CURLOPT_URL => '%s',\n", req.URL)
	b.WriteString("  CURLOPT_RETURNTRANSFER => true,\n")
	fmt.Fprintf(&b, "  CURLOPT_CUSTOMREQUEST => '%s',\n", req.Method)
	if req.HasBody() {
		fmt.Fprintf(&b, "  CURLOPT_POSTFIELDS => '%s',\n", req.Body)
	}
	b.WriteString("  CURLOPT_HTTPHEADER => array(\n")
	for i, h := range req.Headers {
		sep := ","
		if i == len(req.Headers)-1 {
			sep = ""
		}
		fmt.Fprintf(&b, "    '%s: %s'%s\n", h.Name, h.Value, sep)
	}
	b.WriteString("  ),\n));\n\n")
	b.WriteString("$response = curl_exec($curl);\n\ncurl_close($curl);\necho $response;")
	return b.String()
}

func renderRuby(req Request) string {
	var b strings.Builder
	b.WriteString("require 'net/http'\n\n")
	fmt.Fprintf(&b, "uri = URI('%s')\n", req.URL)
	b.WriteString("http = Net::HTTP.new(uri.host, uri.port)\n")
	b.WriteString("http.use_ssl = uri.scheme == 'https'\n\n")
	fmt.Fprintf(&b, "request = Net::HTTP::%s.new(uri.request_uri)\n", rubyMethodClass(req.Method))
	for _, h := range req.Headers {
		fmt.Fprintf(&b, "request['%s'] = '%s'\n", h.Name, h.Value)
	}
	if req.HasBody() {
		fmt.Fprintf(&b, "request.body = '%s'\n", req.Body)
	}
	b.WriteString("\nresponse = http.request(request)\nputs response.body")
	return b.String()
}

func renderGo(req Request) string {
	var b strings.Builder
	b.WriteString("package main\n\nimport (\n\t\"fmt\"\n\t\"net/http\"\n")
	if req.HasBody() {
		b.WriteString("\t\"strings\"\n")
	}
	b.WriteString(")\n\nfunc main() {\n\tclient := &http.Client{}\n\n")
	if req.HasBody() {
		fmt.Fprintf(&b, "\tbody := strings.NewReader(`%s`)\n", req.Body)
		fmt.Fprintf(&b, "\treq, _ := http.NewRequest(\"%s\", \"%s\", body)\n", req.Method, req.URL)
	} else {
		fmt.Fprintf(&b, "\treq, _ := http.NewRequest(\"%s\", \"%s\", nil)\n", req.Method, req.URL)
	}
	for _, h := range req.Headers {
		fmt.Fprintf(&b, "\treq.Header.Set(\"%s\", \"%s\")\n", h.Name, h.Value)
	}
	b.WriteString("\n\tresp, _ := client.Do(req)\n\tdefer resp.Body.Close()\n\n\tfmt.Println(resp.Status)\n}")
	return b.String()
}

// rubyMethodClass maps an HTTP method to its Net::HTTP request class name.
func rubyMethodClass(method string) string {
	if method == "" {
		return "Get"
	}
	return strings.ToUpper(method[:1]) + strings.ToLower(method[1:])
}
