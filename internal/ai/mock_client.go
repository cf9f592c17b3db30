package ai

import "context"

type mockClient struct{}

// NewMock returns a Client that answers every question with a fixed
// pointer to the help command. Used when no API key is configured and in
// tests.
func NewMock() Client {
	return mockClient{}
}

func (mockClient) Answer(_ context.Context, _ string) (string, error) {
	return "ขอบคุณสำหรับคำถามค่ะ เจ้าหน้าที่จะติดต่อกลับโดยเร็ว พิมพ์ \"ช่วยเหลือ\" เพื่อดูคำสั่งที่ใช้ได้", nil
}
