package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

// Manual smoke test against a locally running instance. Registers a
// throwaway account, walks the main flows and prints each response.
//
// Usage: go run scripts/smoke_api.go

const baseURL = "http://localhost:3000/api"

func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

func sendRequest(method, url, token string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func step(name string, resp *http.Response, body []byte, err error) {
	if err != nil {
		color.Red("FAIL %s: %v", name, err)
		os.Exit(1)
	}
	if resp.StatusCode >= 400 {
		color.Red("FAIL %s: status %d: %s", name, resp.StatusCode, string(body))
		os.Exit(1)
	}
	color.Green("OK   %s (%d)", name, resp.StatusCode)

	var decoded map[string]interface{}
	if json.Unmarshal(body, &decoded) == nil {
		prettyPrint(decoded)
	}
}

func extract(body []byte, keys ...string) interface{} {
	var decoded map[string]interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil
	}
	var cur interface{} = decoded
	for _, k := range keys {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil
		}
		cur = m[k]
	}
	return cur
}

func main() {
	email := fmt.Sprintf("smoke-%d@stud.ase.ro", os.Getpid())

	resp, body, err := sendRequest("POST", "/auth/v1/register", "", map[string]string{
		"email":    email,
		"password": "parola123",
		"name":     "Smoke Tester",
	})
	step("register", resp, body, err)

	token, _ := extract(body, "data", "token").(string)
	if token == "" {
		color.Red("FAIL register: no token in response")
		os.Exit(1)
	}

	resp, body, err = sendRequest("POST", "/subject/v1", token, map[string]string{
		"name":  "Smoke Subject",
		"color": "#10B981",
	})
	step("create subject", resp, body, err)
	subjectId, _ := extract(body, "data", "id").(string)

	resp, body, err = sendRequest("POST", "/note/v1", token, map[string]interface{}{
		"title":      "Smoke note",
		"content":    "Created by the smoke script.",
		"subject_id": subjectId,
	})
	step("create note", resp, body, err)
	noteId, _ := extract(body, "data", "id").(string)

	resp, body, err = sendRequest("GET", "/note/v1/"+noteId, token, nil)
	step("show note", resp, body, err)

	resp, body, err = sendRequest("POST", "/group/v1", token, map[string]interface{}{
		"name":       "Smoke Group",
		"is_private": true,
	})
	step("create group", resp, body, err)
	groupId, _ := extract(body, "data", "id").(string)

	resp, body, err = sendRequest("POST", "/group/v1/"+groupId+"/notes", token, map[string]string{
		"note_id": noteId,
	})
	step("share note", resp, body, err)

	resp, body, err = sendRequest("DELETE", "/user/v1/account", token, nil)
	step("delete account", resp, body, err)

	color.Green("All smoke steps passed.")
}
