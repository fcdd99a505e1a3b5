// Command send_command exercises a running server end to end: it logs in
// (registering first if the account does not exist), posts one chat
// command, and prints the resolved result.
//
//	go run ./scripts/send_command.go -email=dev@example.com -password=secret -message="show all my contacts"
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
)

func main() {
	addr := flag.String("addr", "http://localhost:3000", "server base URL")
	email := flag.String("email", "", "account email")
	password := flag.String("password", "", "account password")
	message := flag.String("message", "", "command to send")
	flag.Parse()
	if *email == "" || *password == "" || *message == "" {
		fmt.Println("usage: send_command -email=... -password=... -message=\"...\" [-addr=...]")
		os.Exit(1)
	}

	token, err := login(*addr, *email, *password)
	if err != nil {
		token, err = register(*addr, *email, *password)
	}
	if err != nil {
		fmt.Println("auth error:", err)
		os.Exit(1)
	}

	var result struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := post(*addr+"/api/chat", token, map[string]string{"message": *message}, &result); err != nil {
		fmt.Println("chat error:", err)
		os.Exit(1)
	}
	fmt.Printf("success: %v\n%s\n", result.Success, result.Message)
}

func login(addr, email, password string) (string, error) {
	return tokenCall(addr+"/api/users/login", map[string]string{"email": email, "password": password})
}

func register(addr, email, password string) (string, error) {
	return tokenCall(addr+"/api/users/register", map[string]string{"email": email, "password": password, "name": email})
}

func tokenCall(url string, body map[string]string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	if err := post(url, "", body, &out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", fmt.Errorf("no token in response from %s", url)
	}
	return out.Token, nil
}

func post(url, token string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		var msg struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&msg)
		return fmt.Errorf("%s: %d %s", url, resp.StatusCode, msg.Error)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
