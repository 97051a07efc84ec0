package mailer

import "fmt"

func welcomeEmailTemplate(name, profileURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h1 style="color: #0077b5;">Welcome to Unlinked, %s!</h1>
  <p>Your professional network starts here. Complete your profile so people you know can find you.</p>
  <p><a href="%s" style="background: #0077b5; color: #fff; padding: 10px 20px; text-decoration: none; border-radius: 4px;">Visit your profile</a></p>
</body>
</html>`, name, profileURL)
}

func commentNotificationEmailTemplate(recipientName, commenterName, postURL, commentContent string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Hi %s,</h2>
  <p><strong>%s</strong> commented on your post:</p>
  <blockquote style="border-left: 3px solid #0077b5; padding-left: 10px; color: #555;">%s</blockquote>
  <p><a href="%s" style="background: #0077b5; color: #fff; padding: 10px 20px; text-decoration: none; border-radius: 4px;">View the post</a></p>
</body>
</html>`, recipientName, commenterName, commentContent, postURL)
}

func connectionAcceptedEmailTemplate(senderName, accepterName, profileURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Hi %s,</h2>
  <p><strong>%s</strong> accepted your connection request. You are now connected!</p>
  <p><a href="%s" style="background: #0077b5; color: #fff; padding: 10px 20px; text-decoration: none; border-radius: 4px;">View their profile</a></p>
</body>
</html>`, senderName, accepterName, profileURL)
}
