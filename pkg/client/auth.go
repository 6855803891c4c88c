package client

import "github.com/sxlmons/cloudvault/internal/protocol"

// CreateAccount registers a new user. It does not authenticate the client.
func (c *Client) CreateAccount(username, password, email string) (userID string, err error) {
	resp, err := c.request(protocol.CmdCreateAccountRequest, nil, map[string]string{
		"Username": username, "Password": password, "Email": email,
	})
	if err != nil {
		return "", err
	}
	var result struct {
		UserId string
	}
	if err := statusResult(protocol.CmdCreateAccountRequest, resp, &result); err != nil {
		return "", err
	}
	return result.UserId, nil
}

// Login authenticates the client, binding it to the returned user id for
// every subsequent request.
func (c *Client) Login(username, password string) (userID string, err error) {
	resp, err := c.request(protocol.CmdLoginRequest, nil, map[string]string{
		"Username": username, "Password": password,
	})
	if err != nil {
		return "", err
	}
	var result struct {
		UserId string
	}
	if err := statusResult(protocol.CmdLoginRequest, resp, &result); err != nil {
		return "", err
	}
	c.userID = result.UserId
	return result.UserId, nil
}

// Logout ends the authenticated session.
func (c *Client) Logout() error {
	resp, err := c.request(protocol.CmdLogoutRequest, nil, nil)
	if err != nil {
		return err
	}
	return statusResult(protocol.CmdLogoutRequest, resp, nil)
}
