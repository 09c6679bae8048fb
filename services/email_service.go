package services

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	appConfig "github.com/voltline/voltline-api/config"
	"github.com/voltline/voltline-api/models"
)

// EmailInterface defines the interface for transactional email
type EmailInterface interface {
	SendOrderConfirmation(order *models.Order, recipientEmail string) error
}

// EmailService sends transactional mail through Amazon SES
type EmailService struct {
	client *ses.Client
	sender string
}

var emailServiceInstance EmailInterface

// InitEmailService initializes the SES-backed email service. When no sender
// address is configured the service stays nil and confirmations are skipped.
func InitEmailService() (EmailInterface, error) {
	cfg := appConfig.GetConfig()
	if cfg.SESSenderEmail == "" {
		return nil, fmt.Errorf("SES_SENDER_EMAIL is not configured")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	emailServiceInstance = &EmailService{
		client: ses.NewFromConfig(awsCfg),
		sender: cfg.SESSenderEmail,
	}
	return emailServiceInstance, nil
}

// GetEmailService returns the initialized email service instance (nil when
// email is not configured)
func GetEmailService() EmailInterface {
	return emailServiceInstance
}

// SetEmailService sets the email service instance (primarily for testing)
func SetEmailService(service EmailInterface) {
	emailServiceInstance = service
}

// SendOrderConfirmation sends the order confirmation email for a placed order
func (s *EmailService) SendOrderConfirmation(order *models.Order, recipientEmail string) error {
	if recipientEmail == "" {
		return fmt.Errorf("recipient email address is empty")
	}

	subject := fmt.Sprintf("Order %s Confirmation - Thank You for Your Purchase!", order.OrderNumber)
	totalAmountStr := strconv.FormatFloat(order.Revenue(), 'f', 2, 64)

	bodyHTML := fmt.Sprintf(`
        <html>
        <body>
            <p>Dear %s,</p>
            <p>Thank you for your order! Your order %s has been successfully placed.</p>
            <p><strong>Order Details:</strong></p>
            <ul>
                <li>Order Number: %s</li>
                <li>Total Amount: $%s</li>
            </ul>
            <p>We'll send you another email when your order ships.</p>
            <p>Best regards,</p>
            <p>The Voltline Team</p>
        </body>
        </html>`, order.CustomerName, order.OrderNumber, order.OrderNumber, totalAmountStr)

	bodyText := fmt.Sprintf(
		"Dear %s,\n\nThank you for your order! Your order %s has been successfully placed.\n\n"+
			"Order Details:\nOrder Number: %s\nTotal Amount: $%s\n\n"+
			"We'll send you another email when your order ships.\n\nBest regards,\nThe Voltline Team",
		order.CustomerName, order.OrderNumber, order.OrderNumber, totalAmountStr)

	input := &ses.SendEmailInput{
		Source: aws.String(s.sender),
		Destination: &types.Destination{
			ToAddresses: []string{recipientEmail},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Charset: aws.String("UTF-8"),
				Data:    aws.String(subject),
			},
			Body: &types.Body{
				Html: &types.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(bodyHTML),
				},
				Text: &types.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(bodyText),
				},
			},
		},
	}

	if _, err := s.client.SendEmail(context.TODO(), input); err != nil {
		log.Printf("Failed to send confirmation for order %s to %s: %v", order.OrderNumber, recipientEmail, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("Order confirmation email sent for order %s to %s", order.OrderNumber, recipientEmail)
	return nil
}
